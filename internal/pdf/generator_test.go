package pdf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contractgen/internal/model"
)

func TestNewGeneratorRequiresFont(t *testing.T) {
	_, err := NewGenerator(nil)
	require.ErrorIs(t, err, ErrFontMissing)

	_, err = LoadGenerator("  ")
	require.ErrorIs(t, err, ErrFontMissing)

	_, err = LoadGenerator(filepath.Join(t.TempDir(), "missing.ttf"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFontMissing)
}

func TestServiceRow(t *testing.T) {
	row := serviceRow(model.ServiceLineItem{
		Name:     "Газель",
		CityFrom: "Москва",
		CityTo:   "Тверь",
		Rate:     1500,
		Unit:     "руб./час",
		MinHours: 4,
	})
	assert.Equal(t, []string{"Газель", "Москва - Тверь", "1500", "4"}, row)

	fixed := serviceRow(model.ServiceLineItem{
		Name:     "Упаковка",
		Rate:     3000,
		Unit:     model.FixedFeeUnit,
		MinHours: 2,
	})
	assert.Equal(t, []string{"Упаковка", "-", "3000", "-"}, fixed)
}

func TestPartyLinesUseDashForBlanks(t *testing.T) {
	lines := customerLines(model.ContractContext{CustomerName: "ООО \"Ромашка\"", CustomerINN: "7707083893"})
	assert.Equal(t, "ООО \"Ромашка\"", lines[0])
	assert.Equal(t, "ИНН: 7707083893, КПП: -", lines[1])
	assert.Equal(t, "-: -", lines[4])

	assert.Equal(t, "-", executorLines(model.ContractContext{})[0])
}
