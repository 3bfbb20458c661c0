package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/contractgen/internal/model"
)

func TestGenerateWritesOneRowPerRecord(t *testing.T) {
	records := []model.HistoryRecord{
		{
			INN:            "7707083893",
			CompanyName:    "ПАО \"Сбербанк\"",
			FileName:       "Contract-1.docx",
			ContractNumber: "15/25",
			ContractDate:   "2025-09-01",
			PricingServices: []model.ServiceLineItem{
				{Name: "Газель"},
				{Name: " "},
				{Name: "Грузчики"},
			},
			ExecutorName: "ИП Лукманов М.И.",
			CreatedAt:    time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			INN:            "9728006808",
			CompanyName:    "ООО \"Ромашка\"",
			ContractNumber: "DOG-20250902120000",
			ContractDate:   "не дата",
			Services:       "Перевозка мебели",
		},
	}

	content, err := NewGenerator(nil).Generate(records)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(historySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, historyHeaders, rows[0])

	assert.Equal(t, "01.09.2025 10:30", rows[1][0])
	assert.Equal(t, "15/25", rows[1][1])
	assert.Equal(t, "01.09.2025", rows[1][2])
	assert.Equal(t, "Газель, Грузчики", rows[1][6])
	assert.Equal(t, "Contract-1.docx", rows[1][7])

	assert.Equal(t, "", rows[2][0])
	assert.Equal(t, "не дата", rows[2][2])
	assert.Equal(t, "Перевозка мебели", rows[2][6])
}

func TestGenerateUsesLocation(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	gen := NewGenerator(moscow)
	assert.Equal(t, "01.09.2025 13:30", gen.formatDateTime(time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)))
}

func TestGenerateEmpty(t *testing.T) {
	content, err := NewGenerator(nil).Generate(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
