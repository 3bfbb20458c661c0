package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/contractgen/internal/contract"
	"github.com/nurpe/contractgen/internal/model"
)

const historySheet = "История"

var historyHeaders = []string{
	"Дата создания",
	"Номер договора",
	"Дата договора",
	"ИНН",
	"Заказчик",
	"Исполнитель",
	"Услуги",
	"Файл",
}

type Generator struct {
	location *time.Location
}

func NewGenerator(location *time.Location) *Generator {
	if location == nil {
		location = time.UTC
	}
	return &Generator{location: location}
}

func (g *Generator) Generate(records []model.HistoryRecord) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", historySheet); err != nil {
		return nil, err
	}

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(historySheet, cell, value)
	}

	for i, header := range historyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}
	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = file.SetCellStyle(historySheet, "A1", "H1", style)
	}

	for i, record := range records {
		row := i + 2
		set(fmt.Sprintf("A%d", row), g.formatDateTime(record.CreatedAt))
		set(fmt.Sprintf("B%d", row), record.ContractNumber)
		set(fmt.Sprintf("C%d", row), contract.DisplayDate(record.ContractDate))
		set(fmt.Sprintf("D%d", row), record.INN)
		set(fmt.Sprintf("E%d", row), record.CompanyName)
		set(fmt.Sprintf("F%d", row), record.ExecutorName)
		set(fmt.Sprintf("G%d", row), serviceNames(record))
		set(fmt.Sprintf("H%d", row), record.FileName)
	}

	_ = file.SetColWidth(historySheet, "A", "A", 20)
	_ = file.SetColWidth(historySheet, "B", "D", 18)
	_ = file.SetColWidth(historySheet, "E", "F", 40)
	_ = file.SetColWidth(historySheet, "G", "G", 50)
	_ = file.SetColWidth(historySheet, "H", "H", 60)
	_ = file.SetPanes(historySheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(g.location).Format("02.01.2006 15:04")
}

func serviceNames(record model.HistoryRecord) string {
	names := make([]string, 0, len(record.PricingServices))
	for _, item := range record.PricingServices {
		if name := strings.TrimSpace(item.Name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return strings.Join(names, ", ")
	}
	return strings.TrimSpace(record.Services)
}
