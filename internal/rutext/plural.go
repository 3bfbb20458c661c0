package rutext

// PluralForms формы для 1, 2-4 и 5-20.
type PluralForms struct {
	One  string
	Few  string
	Many string
}

var hourForms = PluralForms{One: "час", Few: "часа", Many: "часов"}

func (f PluralForms) Pick(n int) string {
	if n < 0 {
		n = -n
	}
	if rem := n % 100; rem >= 11 && rem <= 14 {
		return f.Many
	}
	switch last := n % 10; {
	case last == 1:
		return f.One
	case last >= 2 && last <= 4:
		return f.Few
	default:
		return f.Many
	}
}

func PluralizeHours(n int) string {
	return hourForms.Pick(n)
}
