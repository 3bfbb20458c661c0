package model

import (
	"time"

	"github.com/google/uuid"
)

type HistoryRecord struct {
	ID                uuid.UUID         `json:"id"`
	UserID            uuid.UUID         `json:"user_id"`
	INN               string            `json:"inn"`
	CompanyName       string            `json:"company_name"`
	FileName          string            `json:"filename"`
	ContractNumber    string            `json:"contract_number"`
	ContractDate      string            `json:"contract_date"`
	Services          string            `json:"services"`
	PricingServices   []ServiceLineItem `json:"pricing_services"`
	PackingPercentage string            `json:"packing_percentage"`
	PrepaymentAmount  string            `json:"prepayment_amount"`
	BankDetails       string            `json:"bank_details"`
	ExecutorProfileID *uuid.UUID        `json:"executor_profile_id"`
	ExecutorName      string            `json:"executor_name"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Terms восстанавливает условия договора из записи истории.
func (h HistoryRecord) Terms() *ContractTerms {
	if h.ContractNumber == "" {
		return nil
	}
	return &ContractTerms{
		ContractNumber:    h.ContractNumber,
		ContractDate:      h.ContractDate,
		Services:          h.Services,
		PricingServices:   h.PricingServices,
		PackingPercentage: h.PackingPercentage,
		PrepaymentAmount:  h.PrepaymentAmount,
		BankDetails:       h.BankDetails,
	}
}
