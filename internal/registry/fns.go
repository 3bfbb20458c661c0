package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/nurpe/contractgen/internal/model"
)

const (
	sourceFNS = "api-fns"

	foreignBranchForm = "Представительство иностранного юридического лица"
)

// Ключи записи ЕГРЮЛ/ЕГРИП в ответе API-FNS.
const (
	fnsLegalEntity    = "ЮЛ"
	fnsSoleProprietor = "ИП"
	fnsForeignBranch  = "НР"
)

type fnsResponse struct {
	Items []map[string]json.RawMessage `json:"items"`
}

// API-ФНС присылает индексы и номера домов то строкой, то числом
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*t = text(n.String())
	return nil
}

type fnsManager struct {
	FIO      text `json:"ФИО"`
	Position text `json:"Должность"`
}

type fnsAddress struct {
	PostalCode text `json:"Индекс"`
	Region     text `json:"Регион"`
	City       text `json:"Город"`
	Street     text `json:"Улица"`
	House      text `json:"Дом"`
	Building   text `json:"Корпус"`
	Flat       text `json:"Квартира"`
}

type fnsEntity struct {
	INN             text        `json:"ИНН"`
	PersonINN       text        `json:"ИННФЛ"`
	OGRN            text        `json:"ОГРН"`
	OGRNIP          text        `json:"ОГРНИП"`
	KPP             text        `json:"КПП"`
	ShortName       text        `json:"НаимСокрЮЛ"`
	FullName        text        `json:"НаимПолнЮЛ"`
	OKOPF           text        `json:"ОКОПФ"`
	PersonName      text        `json:"ФИОПолн"`
	BranchShortName text        `json:"НаимПредСокр"`
	BranchFullName  text        `json:"НаимПредПолн"`
	Manager         *fnsManager `json:"Руководитель"`
	Address         *fnsAddress `json:"Адрес"`
}

// берём первый элемент items, в нём должен быть блок ЮЛ, ИП или НР
func NormalizeFNS(payload []byte) (model.CompanyRecord, error) {
	var resp fnsResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return model.CompanyRecord{}, malformed(sourceFNS, err.Error(), payload)
	}
	if len(resp.Items) == 0 {
		return model.CompanyRecord{}, fmt.Errorf("%w: %s returned no items", ErrNotFound, sourceFNS)
	}

	item := resp.Items[0]
	for _, kind := range []string{fnsLegalEntity, fnsSoleProprietor, fnsForeignBranch} {
		raw, ok := item[kind]
		if !ok || !present(raw) {
			continue
		}
		var entity fnsEntity
		if err := json.Unmarshal(raw, &entity); err != nil {
			return model.CompanyRecord{}, malformed(sourceFNS, kind+": "+err.Error(), payload)
		}
		return fnsRecord(kind, entity), nil
	}
	return model.CompanyRecord{}, malformed(sourceFNS, "no ЮЛ, ИП or НР block", payload)
}

func fnsRecord(kind string, e fnsEntity) model.CompanyRecord {
	rec := model.CompanyRecord{
		INN:  firstNonEmpty(string(e.INN), string(e.PersonINN)),
		OGRN: firstNonEmpty(string(e.OGRN), string(e.OGRNIP)),
		KPP:  string(e.KPP),
	}

	switch kind {
	case fnsLegalEntity:
		rec.ShortName = string(e.ShortName)
		rec.FullName = string(e.FullName)
		rec.LegalForm = string(e.OKOPF)
		e.Manager.apply(&rec)
	case fnsSoleProprietor:
		name := string(e.PersonName)
		rec.Director = name
		rec.DirectorPosition = soleProprietorTitle
		rec.LegalForm = "ИП"
		rec.ShortName = strings.TrimSpace("ИП " + name)
		rec.FullName = strings.TrimSpace(soleProprietorTitle + " " + name)
	case fnsForeignBranch:
		rec.ShortName = firstNonEmpty(string(e.BranchShortName), string(e.BranchFullName))
		rec.FullName = firstNonEmpty(string(e.BranchFullName), string(e.BranchShortName))
		rec.LegalForm = foreignBranchForm
		e.Manager.apply(&rec)
	}

	rec.LegalAddress = e.Address.String()
	rec.PostalAddress = rec.LegalAddress
	return rec
}

func (m *fnsManager) apply(rec *model.CompanyRecord) {
	if m == nil {
		return
	}
	rec.Director = string(m.FIO)
	rec.DirectorPosition = string(m.Position)
}

func (a *fnsAddress) String() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 7)
	for _, part := range []text{a.PostalCode, a.Region, a.City, a.Street, a.House} {
		if part != "" {
			parts = append(parts, string(part))
		}
	}
	if a.Building != "" {
		parts = append(parts, "корп. "+string(a.Building))
	}
	if a.Flat != "" {
		parts = append(parts, "кв. "+string(a.Flat))
	}
	return strings.Join(parts, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// FNSProvider платный резервный источник
type FNSProvider struct {
	upstream *upstream
	key      string
}

func NewFNSProvider(cfg ProviderConfig) *FNSProvider {
	return &FNSProvider{
		upstream: newUpstream(cfg),
		key:      cfg.Key,
	}
}

func (p *FNSProvider) Name() string { return sourceFNS }

func (p *FNSProvider) Fetch(ctx context.Context, taxID string) (model.CompanyRecord, error) {
	body, err := p.upstream.do(ctx, http.MethodGet, "/api/egr", func(r *request) {
		r.SetQueryParams(map[string]string{
			"key": p.key,
			"req": taxID,
		})
	})
	if err != nil {
		return model.CompanyRecord{}, fmt.Errorf("api-fns: %w", err)
	}
	return NormalizeFNS(body)
}
