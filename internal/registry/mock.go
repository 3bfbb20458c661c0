package registry

import (
	"context"
	"fmt"

	"github.com/nurpe/contractgen/internal/model"
)

const sourceMock = "mock"

var mockCompanies = map[string]model.CompanyRecord{
	"9728006808": {
		INN:              "9728006808",
		KPP:              "772801001",
		OGRN:             "1207700223257",
		ShortName:        `ООО "ТЕСТОВАЯ КОМПАНИЯ 1"`,
		FullName:         `Общество с ограниченной ответственностью "ТЕСТОВАЯ КОМПАНИЯ 1"`,
		LegalAddress:     "125047, г. Москва, ул. Тверская, д. 10",
		PostalAddress:    "125047, г. Москва, ул. Тверская, д. 10",
		Director:         "Иванов Иван Иванович",
		DirectorPosition: "Генеральный директор",
		BankAccount:      "40702810400000123456",
		BankName:         `ПАО "Сбербанк"`,
		BIK:              "044525225",
		CorrAccount:      "30101810400000000225",
		LegalForm:        "ООО",
	},
}

// MockProvider отдаёт встроенные тестовые компании, если реестры недоступны
type MockProvider struct{}

func (MockProvider) Name() string { return sourceMock }

func (MockProvider) Fetch(_ context.Context, taxID string) (model.CompanyRecord, error) {
	rec, ok := mockCompanies[taxID]
	if !ok {
		return model.CompanyRecord{}, fmt.Errorf("%w: %s has no data for %q", ErrNotFound, sourceMock, taxID)
	}
	return rec, nil
}
