package rutext

import (
	"fmt"
	"time"
)

var monthsGenitive = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatDate форматирует дату как «03» октября 2025.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("«%02d» %s %d", t.Day(), monthsGenitive[t.Month()-1], t.Year())
}
