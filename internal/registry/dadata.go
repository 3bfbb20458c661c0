package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/nurpe/contractgen/internal/model"
)

const sourceDaData = "dadata"

const (
	dadataLegal      = "LEGAL"
	dadataIndividual = "INDIVIDUAL"
)

type dadataResponse struct {
	Suggestions *[]dadataSuggestion `json:"suggestions"`
}

type dadataSuggestion struct {
	Value string      `json:"value"`
	Data  *dadataData `json:"data"`
}

type dadataData struct {
	Type string `json:"type"`
	INN  string `json:"inn"`
	KPP  string `json:"kpp"`
	OGRN string `json:"ogrn"`
	Name struct {
		Full         string `json:"full"`
		FullWithOPF  string `json:"full_with_opf"`
		ShortWithOPF string `json:"short_with_opf"`
	} `json:"name"`
	OPF *struct {
		Short string `json:"short"`
	} `json:"opf"`
	Management *struct {
		Name string `json:"name"`
		Post string `json:"post"`
	} `json:"management"`
	Address *struct {
		Value string `json:"value"`
	} `json:"address"`
	Capital *struct {
		Value *float64 `json:"value"`
	} `json:"capital"`
}

func NormalizeDaData(payload []byte) (model.CompanyRecord, error) {
	var resp dadataResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return model.CompanyRecord{}, malformed(sourceDaData, err.Error(), payload)
	}
	if resp.Suggestions == nil {
		return model.CompanyRecord{}, malformed(sourceDaData, "no suggestions member", payload)
	}
	if len(*resp.Suggestions) == 0 {
		return model.CompanyRecord{}, fmt.Errorf("%w: %s returned no suggestions", ErrNotFound, sourceDaData)
	}

	data := (*resp.Suggestions)[0].Data
	if data == nil {
		return model.CompanyRecord{}, malformed(sourceDaData, "suggestion without data", payload)
	}

	rec := model.CompanyRecord{
		INN:  data.INN,
		KPP:  data.KPP,
		OGRN: data.OGRN,
	}
	if data.Address != nil {
		rec.LegalAddress = data.Address.Value
		rec.PostalAddress = data.Address.Value
	}

	switch data.Type {
	case dadataIndividual:
		name := data.Name.Full
		rec.ShortName = strings.TrimSpace("ИП " + name)
		rec.FullName = strings.TrimSpace(soleProprietorTitle + " " + name)
		rec.Director = name
		rec.DirectorPosition = soleProprietorTitle
		rec.LegalForm = "ИП"
	case dadataLegal:
		rec.ShortName = data.Name.ShortWithOPF
		rec.FullName = firstNonEmpty(data.Name.FullWithOPF, data.Name.ShortWithOPF)
		if data.OPF != nil {
			rec.LegalForm = data.OPF.Short
		}
		if data.Management != nil {
			rec.Director = data.Management.Name
			rec.DirectorPosition = data.Management.Post
		}
		if data.Capital != nil && data.Capital.Value != nil {
			rec.AuthorizedCapital = strconv.FormatInt(int64(*data.Capital.Value), 10)
		}
	default:
		return model.CompanyRecord{}, malformed(sourceDaData, fmt.Sprintf("unknown party type %q", data.Type), payload)
	}
	return rec, nil
}

type DaDataProvider struct {
	upstream *upstream
	key      string
	secret   string
}

func NewDaDataProvider(cfg ProviderConfig) *DaDataProvider {
	return &DaDataProvider{
		upstream: newUpstream(cfg),
		key:      cfg.Key,
		secret:   cfg.Secret,
	}
}

func (p *DaDataProvider) Name() string { return sourceDaData }

func (p *DaDataProvider) Fetch(ctx context.Context, taxID string) (model.CompanyRecord, error) {
	body, err := p.upstream.do(ctx, http.MethodPost, "/findById/party", func(r *request) {
		r.SetHeader("Authorization", "Token "+p.key)
		if p.secret != "" {
			r.SetHeader("X-Secret", p.secret)
		}
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(map[string]any{"query": taxID, "count": 1})
	})
	if err != nil {
		return model.CompanyRecord{}, fmt.Errorf("dadata: %w", err)
	}
	return NormalizeDaData(body)
}
