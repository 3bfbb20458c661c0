package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const FixedFeeUnit = "руб. (фиксированно)"

type ServiceLineItem struct {
	Name            string   `json:"name"`
	CityFrom        string   `json:"city_from"`
	CityTo          string   `json:"city_to"`
	Rate            LooseInt `json:"rate"`
	Unit            string   `json:"unit"`
	MinHours        LooseInt `json:"min_hours"`
	AdditionalHours LooseInt `json:"additional_hours"`
}

func (i ServiceLineItem) IsFixedFee() bool {
	return strings.TrimSpace(i.Unit) == FixedFeeUnit
}

type ContractTerms struct {
	ContractNumber    string            `json:"contract_number"`
	ContractDate      string            `json:"contract_date"`
	Services          string            `json:"services"`
	PricingServices   []ServiceLineItem `json:"pricing_services"`
	PackingPercentage string            `json:"packing_percentage"`
	PrepaymentAmount  string            `json:"prepayment_amount"`
	BankDetails       string            `json:"bank_details"`
}

// LooseInt принимает и число, и строку; мусор превращается в ноль.
type LooseInt int

func (n *LooseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			*n = 0
			return nil
		}
	} else {
		raw = string(data)
	}
	*n = LooseInt(ParseInt(raw))
	return nil
}

func ParseInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int(f)) {
		return int(f)
	}
	return 0
}
