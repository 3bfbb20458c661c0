package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/contractgen/internal/model"
)

var ErrFontMissing = errors.New("pdf font is not configured")

// Generator требует TTF-шрифт: во встроенных шрифтах gofpdf нет кириллицы.
type Generator struct {
	fontName string
	font     []byte
}

func NewGenerator(font []byte) (*Generator, error) {
	if len(font) == 0 {
		return nil, ErrFontMissing
	}
	return &Generator{fontName: "Summary", font: font}, nil
}

func LoadGenerator(fontPath string) (*Generator, error) {
	if strings.TrimSpace(fontPath) == "" {
		return nil, ErrFontMissing
	}
	font, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf font: %w", err)
	}
	return NewGenerator(font)
}

func (g *Generator) Generate(summary model.ContractSummary) ([]byte, error) {
	ctx := summary.Context

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddUTF8FontFromBytes(g.fontName, "", g.font)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", g.font)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Договор № %s", ctx.ContractNumber), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("от %s", ctx.ContractDate), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	partyBlock(pdf, g.fontName, "Заказчик", customerLines(ctx))
	pdf.Ln(2)
	partyBlock(pdf, g.fontName, "Исполнитель", executorLines(ctx))
	pdf.Ln(4)

	if len(summary.Services) > 0 {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Стоимость услуг", "", 1, "L", false, 0, "")
		widths := []float64{80, 50, 25, 25}
		drawTableRow(pdf, g.fontName, []string{"Услуга", "Маршрут", "Ставка", "Мин. часов"}, widths, true)
		for _, item := range summary.Services {
			drawTableRow(pdf, g.fontName, serviceRow(item), widths, false)
		}
		pdf.Ln(2)
	}

	if text := strings.TrimSpace(ctx.HourlyPaymentText); text != "" {
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, text, "", "L", false)
		pdf.Ln(2)
	}
	if services := strings.TrimSpace(ctx.ContractServices); services != "" {
		pdf.SetFont(g.fontName, "B", 11)
		pdf.CellFormat(0, 6, "Предмет договора", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, services, "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Заказчик: ______________________ /%s/", safeValue(ctx.CustomerDirector)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Исполнитель: ______________________ /%s/", safeValue(ctx.ExecutorShortName)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func customerLines(ctx model.ContractContext) []string {
	return []string{
		safeValue(ctx.CustomerName),
		fmt.Sprintf("ИНН: %s, КПП: %s", safeValue(ctx.CustomerINN), safeValue(ctx.CustomerKPP)),
		fmt.Sprintf("ОГРН: %s", safeValue(ctx.CustomerOGRN)),
		fmt.Sprintf("Адрес: %s", safeValue(ctx.CustomerLegalAddress)),
		fmt.Sprintf("%s: %s", safeValue(ctx.CustomerDirectorPosition), safeValue(ctx.CustomerDirector)),
	}
}

func executorLines(ctx model.ContractContext) []string {
	return []string{
		safeValue(ctx.ExecutorFullName),
		fmt.Sprintf("ИНН: %s, ОГРН: %s", safeValue(ctx.ExecutorINN), safeValue(ctx.ExecutorOGRN)),
		fmt.Sprintf("Адрес: %s", safeValue(ctx.ExecutorLegalAddress)),
		fmt.Sprintf("Р/с %s в %s, БИК %s", safeValue(ctx.ExecutorBankAccount), safeValue(ctx.ExecutorBankName), safeValue(ctx.ExecutorBIK)),
	}
}

func serviceRow(item model.ServiceLineItem) []string {
	route := "-"
	from, to := strings.TrimSpace(item.CityFrom), strings.TrimSpace(item.CityTo)
	if from != "" || to != "" {
		route = fmt.Sprintf("%s - %s", safeValue(from), safeValue(to))
	}
	minHours := "-"
	if item.MinHours > 0 && !item.IsFixedFee() {
		minHours = fmt.Sprintf("%d", item.MinHours)
	}
	return []string{safeValue(item.Name), route, fmt.Sprintf("%d", item.Rate), minHours}
}

func partyBlock(pdf *gofpdf.Fpdf, fontName, title string, lines []string) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
