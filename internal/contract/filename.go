package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/nurpe/contractgen/internal/rutext"
)

const (
	maxCompanyLen  = 50
	maxExecutorLen = 30
)

// ComposeFilename: Contract-<номер>-<дата>-<заказчик>-<исполнитель>.docx
func ComposeFilename(companyName, contractNumber, contractDate, executorShortName string) string {
	return fmt.Sprintf("Contract-%s-%s-%s-%s.docx",
		filenamePart(contractNumber, 0),
		filenamePart(contractDate, 0),
		filenamePart(companyName, maxCompanyLen),
		filenamePart(executorShortName, maxExecutorLen),
	)
}

// обрезаем уже после транслитерации
func filenamePart(s string, limit int) string {
	latin := strings.TrimSpace(rutext.Transliterate(s))
	if limit > 0 && len(latin) > limit {
		latin = strings.TrimSpace(latin[:limit])
	}
	return strings.Join(strings.Fields(latin), "_")
}

func DisplayDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if t, err := time.Parse(isoDate, iso); err == nil {
		return t.Format("02.01.2006")
	}
	return strings.ReplaceAll(iso, "-", ".")
}
