package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nurpe/contractgen/internal/model"
	"github.com/nurpe/contractgen/internal/rutext"
)

// Форма «дополнительный час» зависит от числа отдельно от простого «час/часа/часов».
var additionalHourForms = rutext.PluralForms{
	One:  "дополнительный час",
	Few:  "дополнительных часа",
	Many: "дополнительных часов",
}

// Compose собирает абзац о стоимости; неполные позиции пропускаются.
func Compose(items []model.ServiceLineItem, packingPercentage, prepaymentAmount string) string {
	clauses := make([]string, 0, len(items)+2)
	for _, item := range items {
		if clause := lineItemClause(item); clause != "" {
			clauses = append(clauses, clause)
		}
	}
	if clause := packingClause(packingPercentage); clause != "" {
		clauses = append(clauses, clause)
	}
	if clause := prepaymentClause(prepaymentAmount); clause != "" {
		clauses = append(clauses, clause)
	}
	return strings.Join(clauses, " ")
}

func lineItemClause(item model.ServiceLineItem) string {
	rate := int(item.Rate)
	minHours := int(item.MinHours)
	fixed := item.IsFixedFee()
	if rate <= 0 || (!fixed && minHours <= 0) {
		return ""
	}

	name := strings.TrimSpace(item.Name)
	unit := strings.TrimSpace(item.Unit)
	city := cityPhrase(item.CityFrom, item.CityTo)
	amount := fmt.Sprintf("%d (%s)", rate, rutext.NumberToWords(rate))

	if fixed {
		return fmt.Sprintf("Стоимость %s %s составит %s рублей.", name, city, amount)
	}

	clause := fmt.Sprintf("Стоимость %s %s составит %s %s, минимальный заказ %d %s.",
		name, city, amount, unit, minHours, rutext.PluralizeHours(minHours))

	if extra := int(item.AdditionalHours); extra > 0 {
		clause += fmt.Sprintf(" Оплачивается %d %s в размере %s %s к отработанному времени за удаленность.",
			extra, additionalHourForms.Pick(extra), amount, unit)
	}
	return clause
}

func cityPhrase(from, to string) string {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if to != "" {
		return fmt.Sprintf("из г. %s в г. %s", from, to)
	}
	return fmt.Sprintf("в г. %s", from)
}

func packingClause(raw string) string {
	percentage, ok := parseOptionalInt(raw)
	if !ok || percentage < 0 {
		return ""
	}
	return fmt.Sprintf("Упаковочный материал оплачивается по чеку, так же оплачивается %d%% от суммы в чеке.", percentage)
}

func prepaymentClause(raw string) string {
	amount, ok := parseOptionalInt(raw)
	if !ok || amount <= 0 {
		return ""
	}
	return fmt.Sprintf("Оплачивается предоплата в размере %d (%s) рублей.", amount, rutext.NumberToWords(amount))
}

func parseOptionalInt(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}
