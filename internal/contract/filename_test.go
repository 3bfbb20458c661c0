package contract

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestComposeFilename(t *testing.T) {
	got := ComposeFilename(`ООО "Ромашка"`, "15/25", "01.09.2025", "ИП Лукманов М.И.")
	assert.Equal(t, "Contract-15_25-01.09.2025-OOO__Romashka_-IP_Lukmanov_M.I..docx", got)
}

func TestComposeFilenameIsASCII(t *testing.T) {
	got := ComposeFilename("Щёлковский завод «Прогресс»", "DOG-20251003140509", "03.10.2025", "Исполнитель")
	for _, r := range got {
		assert.True(t, r < unicode.MaxASCII, "non-ASCII rune %q in %s", r, got)
		assert.False(t, unicode.Is(unicode.Cyrillic, r))
	}
	assert.Equal(t, got, ComposeFilename("Щёлковский завод «Прогресс»", "DOG-20251003140509", "03.10.2025", "Исполнитель"))
}

func TestComposeFilenameTruncatesAfterTransliteration(t *testing.T) {
	company := strings.Repeat("Ш", 40)
	got := ComposeFilename(company, "1", "01.01.2025", strings.Repeat("Щ", 20))

	parts := strings.Split(strings.TrimSuffix(got, ".docx"), "-")
	assert.Len(t, parts, 5)
	assert.Len(t, parts[3], maxCompanyLen)
	assert.Equal(t, strings.Repeat("Sh", 25), parts[3])
	assert.Len(t, parts[4], maxExecutorLen)
}

func TestComposeFilenameCollapsesWhitespace(t *testing.T) {
	got := ComposeFilename("Альфа   Бета", "7", "01.01.2025", " Гамма ")
	assert.Equal(t, "Contract-7-01.01.2025-Alfa_Beta-Gamma.docx", got)
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "01.09.2025", DisplayDate("2025-09-01"))
	assert.Equal(t, "2025.13.01", DisplayDate("2025-13-01"))
	assert.Equal(t, "", DisplayDate(""))
}
