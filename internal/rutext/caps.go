package rutext

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Аббревиатуры организационно-правовых форм, которые не трогаем.
var legalAbbreviations = map[string]struct{}{
	"ООО": {}, "ОАО": {}, "ЗАО": {}, "ПАО": {}, "АО": {}, "НАО": {},
	"ИП": {}, "НКО": {}, "АНО": {}, "ГУП": {}, "МУП": {}, "ФГУП": {},
	"ТСЖ": {}, "СНТ": {}, "ПК": {}, "КФХ": {}, "РФ": {},
}

// FixCaps исправляет регистр текста, пришедшего из реестра капсом.
func FixCaps(s string) string {
	if !isAllUpper(s) {
		return s
	}

	// Caser не потокобезопасен
	title := cases.Title(language.Russian)
	tokens := strings.Split(s, " ")
	personName := looksLikePersonName(tokens)

	var quotes quoteState
	for i, token := range tokens {
		if token == "" {
			continue
		}
		quoted := quotes.inside || containsQuote(token)
		quotes.scan(token)

		if _, ok := legalAbbreviations[strings.Trim(token, ",.;:")]; ok {
			continue
		}
		if personName || quoted {
			tokens[i] = title.String(token)
		} else {
			tokens[i] = capitalizeFirst(token)
		}
	}
	return strings.Join(tokens, " ")
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// ФАМИЛИЯ ИМЯ ОТЧЕСТВО без других слов
func looksLikePersonName(tokens []string) bool {
	words := 0
	for _, token := range tokens {
		if token == "" {
			continue
		}
		for _, r := range token {
			if !unicode.IsLetter(r) && r != '-' {
				return false
			}
		}
		words++
	}
	return words == 3
}

type quoteState struct {
	inside bool
}

func (q *quoteState) scan(token string) {
	for _, r := range token {
		switch r {
		case '«', '„':
			q.inside = true
		case '»', '”':
			q.inside = false
		case '"', '“':
			q.inside = !q.inside
		}
	}
}

func containsQuote(token string) bool {
	return strings.ContainsAny(token, "\"«»“”„")
}

func capitalizeFirst(token string) string {
	runes := []rune(strings.ToLower(token))
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(runes)
}
