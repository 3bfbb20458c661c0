package legalform

import (
	"strings"
	"unicode"

	"github.com/nurpe/contractgen/internal/rutext"
)

type Kind string

const (
	KindSoleProprietor Kind = "IP"
	KindLLC            Kind = "OOO"
	KindJointStock     Kind = "AO"
	KindOther          Kind = "OTHER"
)

const (
	BasisRegistration = "свидетельства о государственной регистрации"
	BasisCharter      = "Устава"
	BasisConstituent  = "учредительных документов"

	DefaultTitle = "Генеральный директор"
)

// Названия должностей учредителей, которые в договоре заменяются на руководителя.
var founderTitles = []string{"учредитель", "участник", "единственный участник"}

type Input struct {
	LegalForm      string
	FullName       string
	ShortName      string
	SignatoryName  string
	SignatoryTitle string
}

type Result struct {
	Kind                   Kind
	LegalBasis             string
	SignatoryName          string
	SignatoryTitle         string
	SignatoryTitleGenitive string
}

func (r Result) IsLLC() bool            { return r.Kind == KindLLC }
func (r Result) IsSoleProprietor() bool { return r.Kind == KindSoleProprietor }
func (r Result) IsJointStock() bool     { return r.Kind == KindJointStock }

type markers struct {
	words []string // whole-word abbreviations
	stems []string // substrings
}

type rule struct {
	kind        Kind
	markers     markers // searched in the legal form
	nameMarkers markers // searched in the full and short names
	build       func(in Input) Result
}

// порядок важен: ИП проверяем первыми
var rules = []rule{
	{
		kind:        KindSoleProprietor,
		markers:     markers{words: []string{"ип"}, stems: []string{"индивидуальн"}},
		nameMarkers: markers{stems: []string{"индивидуальн"}},
		build: func(in Input) Result {
			return Result{
				LegalBasis:    BasisRegistration,
				SignatoryName: in.SignatoryName,
			}
		},
	},
	{
		kind:        KindLLC,
		markers:     markers{words: []string{"ооо"}, stems: []string{"ограниченной ответственностью"}},
		nameMarkers: markers{stems: []string{"ограниченной ответственностью"}},
		build:       buildCorporate,
	},
	{
		kind:    KindJointStock,
		markers: markers{words: []string{"ао", "пао", "зао", "оао", "нао"}, stems: []string{"акционерное общество"}},
		build:   buildCorporate,
	},
}

func Classify(in Input) Result {
	form := strings.ToLower(in.LegalForm)
	names := strings.ToLower(in.FullName + " " + in.ShortName)

	for _, r := range rules {
		if r.markers.match(form) || r.nameMarkers.match(names) {
			res := r.build(in)
			res.Kind = r.kind
			return res
		}
	}

	res := Result{
		Kind:           KindOther,
		LegalBasis:     BasisConstituent,
		SignatoryName:  in.SignatoryName,
		SignatoryTitle: strings.TrimSpace(in.SignatoryTitle),
	}
	if res.SignatoryTitle != "" {
		res.SignatoryTitleGenitive = rutext.ToGenitive(res.SignatoryTitle)
	}
	return res
}

func buildCorporate(in Input) Result {
	title := strings.TrimSpace(in.SignatoryTitle)
	if title == "" || isFounderTitle(title) {
		title = DefaultTitle
	}
	return Result{
		LegalBasis:             BasisCharter,
		SignatoryName:          in.SignatoryName,
		SignatoryTitle:         title,
		SignatoryTitleGenitive: rutext.ToGenitive(title),
	}
}

func isFounderTitle(title string) bool {
	title = strings.ToLower(title)
	for _, founder := range founderTitles {
		if title == founder {
			return true
		}
	}
	return false
}

func (m markers) match(text string) bool {
	if text == "" {
		return false
	}
	for _, stem := range m.stems {
		if strings.Contains(text, stem) {
			return true
		}
	}
	if len(m.words) == 0 {
		return false
	}
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, word := range words {
		for _, w := range m.words {
			if word == w {
				return true
			}
		}
	}
	return false
}
