package rutext

import "strings"

// Родительный падеж должностей для оборота «в лице ...».
var titleGenitive = map[string]string{
	"генеральный директор":           "Генерального директора",
	"директор":                       "Директора",
	"исполнительный директор":        "Исполнительного директора",
	"управляющий директор":           "Управляющего директора",
	"коммерческий директор":          "Коммерческого директора",
	"финансовый директор":            "Финансового директора",
	"управляющий":                    "Управляющего",
	"конкурсный управляющий":         "Конкурсного управляющего",
	"президент":                      "Президента",
	"председатель":                   "Председателя",
	"председатель правления":         "Председателя правления",
	"председатель совета директоров": "Председателя совета директоров",
	"руководитель":                   "Руководителя",
	"учредитель":                     "Учредителя",
	"ректор":                         "Ректора",
	"главный врач":                   "Главного врача",
	"индивидуальный предприниматель": "Индивидуального предпринимателя",
}

// ToGenitive ставит должность в родительный падеж. К неизвестной должности дописывается «а».
func ToGenitive(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	key := strings.ToLower(strings.Join(strings.Fields(title), " "))
	if genitive, ok := titleGenitive[key]; ok {
		return genitive
	}
	return title + "а"
}
