package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nurpe/contractgen/internal/model"
)

const (
	sourceDataNewton = "datanewton"

	soleProprietorTitle = "Индивидуальный предприниматель"
	founderTitle        = "Учредитель"
)

type dnResponse struct {
	INN        string          `json:"inn"`
	OGRN       string          `json:"ogrn"`
	Company    json.RawMessage `json:"company"`
	Individual json.RawMessage `json:"individual"`
}

type dnAddress struct {
	LineAddress string `json:"line_address"`
}

type dnContacts struct {
	BankAccount string `json:"bank_account"`
	BankName    string `json:"bank_name"`
	BIK         string `json:"bik"`
	CorrAccount string `json:"corr_account"`
}

type dnPerson struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

type dnCompany struct {
	KPP   string `json:"kpp"`
	OPF   string `json:"opf"`
	Names struct {
		ShortName string `json:"short_name"`
		FullName  string `json:"full_name"`
	} `json:"company_names"`
	Address  *dnAddress  `json:"address"`
	Contacts *dnContacts `json:"contacts"`
	Managers []dnPerson  `json:"managers"`
	Owners   *struct {
		Persons []dnPerson `json:"fl"`
	} `json:"owners"`
}

type dnIndividual struct {
	FIO      string      `json:"fio"`
	Kind     string      `json:"vid_iptext"`
	Address  *dnAddress  `json:"address"`
	Contacts *dnContacts `json:"contacts"`
}

func NormalizeDataNewton(payload []byte) (model.CompanyRecord, error) {
	var resp dnResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return model.CompanyRecord{}, malformed(sourceDataNewton, err.Error(), payload)
	}

	switch {
	case present(resp.Individual):
		var ind dnIndividual
		if err := json.Unmarshal(resp.Individual, &ind); err != nil {
			return model.CompanyRecord{}, malformed(sourceDataNewton, "individual: "+err.Error(), payload)
		}
		return dnIndividualRecord(resp, ind), nil
	case present(resp.Company):
		var company dnCompany
		if err := json.Unmarshal(resp.Company, &company); err != nil {
			return model.CompanyRecord{}, malformed(sourceDataNewton, "company: "+err.Error(), payload)
		}
		return dnCompanyRecord(resp, company), nil
	default:
		return model.CompanyRecord{}, malformed(sourceDataNewton, "neither company nor individual block", payload)
	}
}

func dnIndividualRecord(resp dnResponse, ind dnIndividual) model.CompanyRecord {
	kind := ind.Kind
	if kind == "" {
		kind = soleProprietorTitle
	}
	address := ind.Address.line()
	rec := model.CompanyRecord{
		INN:              resp.INN,
		OGRN:             resp.OGRN,
		ShortName:        "ИП " + ind.FIO,
		FullName:         kind + " " + ind.FIO,
		LegalAddress:     address,
		PostalAddress:    address,
		Director:         ind.FIO,
		DirectorPosition: soleProprietorTitle,
		LegalForm:        "ИП",
	}
	ind.Contacts.apply(&rec)
	return rec
}

func dnCompanyRecord(resp dnResponse, company dnCompany) model.CompanyRecord {
	address := company.Address.line()
	rec := model.CompanyRecord{
		INN:           resp.INN,
		KPP:           company.KPP,
		OGRN:          resp.OGRN,
		ShortName:     company.Names.ShortName,
		FullName:      company.Names.FullName,
		LegalAddress:  address,
		PostalAddress: address,
		LegalForm:     company.OPF,
	}

	// Подписант: первый руководитель, иначе первый учредитель-физлицо.
	switch {
	case len(company.Managers) > 0:
		rec.Director = company.Managers[0].Name
		rec.DirectorPosition = company.Managers[0].Position
	case company.Owners != nil && len(company.Owners.Persons) > 0:
		rec.Director = company.Owners.Persons[0].Name
		rec.DirectorPosition = founderTitle
	}

	company.Contacts.apply(&rec)
	return rec
}

func (a *dnAddress) line() string {
	if a == nil {
		return ""
	}
	return a.LineAddress
}

func (c *dnContacts) apply(rec *model.CompanyRecord) {
	if c == nil {
		return
	}
	rec.BankAccount = c.BankAccount
	rec.BankName = c.BankName
	rec.BIK = c.BIK
	rec.CorrAccount = c.CorrAccount
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

type DataNewtonProvider struct {
	upstream *upstream
	key      string
}

func NewDataNewtonProvider(cfg ProviderConfig) *DataNewtonProvider {
	return &DataNewtonProvider{
		upstream: newUpstream(cfg),
		key:      cfg.Key,
	}
}

func (p *DataNewtonProvider) Name() string { return sourceDataNewton }

func (p *DataNewtonProvider) Fetch(ctx context.Context, taxID string) (model.CompanyRecord, error) {
	body, err := p.upstream.do(ctx, http.MethodGet, "/v1/counterparty", func(r *request) {
		r.SetQueryParams(map[string]string{
			"key":     p.key,
			"inn":     taxID,
			"filters": "OWNER_BLOCK,ADDRESS_BLOCK",
		})
	})
	if err != nil {
		return model.CompanyRecord{}, fmt.Errorf("datanewton: %w", err)
	}
	return NormalizeDataNewton(body)
}
