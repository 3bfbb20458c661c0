package model

import (
	"time"

	"github.com/google/uuid"
)

type ExecutorOrgType string

const (
	ExecutorOrgTypeIP  ExecutorOrgType = "ip"
	ExecutorOrgTypeOOO ExecutorOrgType = "ooo"
)

func (t ExecutorOrgType) Valid() bool {
	return t == ExecutorOrgTypeIP || t == ExecutorOrgTypeOOO
}

type ExecutorProfile struct {
	ID            uuid.UUID       `json:"id" yaml:"-"`
	ProfileName   string          `json:"profile_name" yaml:"profile_name"`
	OrgType       ExecutorOrgType `json:"org_type" yaml:"org_type"`
	FullName      string          `json:"full_name" yaml:"full_name"`
	ShortName     string          `json:"short_name" yaml:"short_name"`
	LegalAddress  string          `json:"legal_address" yaml:"legal_address"`
	PostalAddress string          `json:"postal_address" yaml:"postal_address"`
	INN           string          `json:"inn" yaml:"inn"`
	OGRN          string          `json:"ogrn" yaml:"ogrn"`
	BankAccount   string          `json:"bank_account" yaml:"bank_account"`
	BankName      string          `json:"bank_name" yaml:"bank_name"`
	BIK           string          `json:"bik" yaml:"bik"`
	CorrAccount   string          `json:"corr_account" yaml:"corr_account"`
	Email         string          `json:"email" yaml:"email"`
	Phone         string          `json:"phone" yaml:"phone"`
	IsDefault     bool            `json:"is_default" yaml:"is_default"`
	CreatedAt     time.Time       `json:"created_at" yaml:"-"`
	UpdatedAt     time.Time       `json:"updated_at" yaml:"-"`
}
