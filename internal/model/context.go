package model

import "time"

// ContractContext содержит все значения, доступные шаблону договора.
type ContractContext struct {
	CustomerINN              string
	CustomerKPP              string
	CustomerOGRN             string
	CustomerName             string
	CustomerFullName         string
	CustomerLegalAddress     string
	CustomerPostalAddress    string
	CustomerDirector         string
	CustomerDirectorPosition string
	CustomerBankAccount      string
	CustomerBankName         string
	CustomerBIK              string
	CustomerCorrAccount      string

	CustomerLegalBasis       string
	CustomerActsAs           string
	CustomerPosition         string
	CustomerPositionGenitive string
	IsOOO                    bool
	IsIP                     bool
	IsAO                     bool
	LargeCapital             bool
	CapitalText              string

	ContractNumber    string
	ContractDate      string
	CurrentDate       string
	ContractServices  string
	HourlyPaymentText string
	BankDetails       string

	// IssuedOn дата договора после подстановки сегодняшней; в шаблон не идёт.
	IssuedOn time.Time

	ExecutorFullName      string
	ExecutorShortName     string
	ExecutorLegalAddress  string
	ExecutorPostalAddress string
	ExecutorINN           string
	ExecutorOGRN          string
	ExecutorBankAccount   string
	ExecutorBankName      string
	ExecutorBIK           string
	ExecutorCorrAccount   string
	ExecutorEmail         string
	ExecutorPhone         string
	ExecIsSoleProprietor  bool
	ExecIsLLC             bool
}

func (c ContractContext) Values() map[string]any {
	return map[string]any{
		"customer_inn":               c.CustomerINN,
		"customer_kpp":               c.CustomerKPP,
		"customer_ogrn":              c.CustomerOGRN,
		"customer_name":              c.CustomerName,
		"customer_full_name":         c.CustomerFullName,
		"customer_legal_address":     c.CustomerLegalAddress,
		"customer_postal_address":    c.CustomerPostalAddress,
		"customer_director":          c.CustomerDirector,
		"customer_director_position": c.CustomerDirectorPosition,
		"customer_bank_account":      c.CustomerBankAccount,
		"customer_bank_name":         c.CustomerBankName,
		"customer_bik":               c.CustomerBIK,
		"customer_corr_account":      c.CustomerCorrAccount,
		"customer_legal_basis":       c.CustomerLegalBasis,
		"customer_acts_as":           c.CustomerActsAs,
		"customer_position":          c.CustomerPosition,
		"customer_position_genitive": c.CustomerPositionGenitive,
		"is_ooo":                     c.IsOOO,
		"is_ip":                      c.IsIP,
		"is_ao":                      c.IsAO,
		"large_capital":              c.LargeCapital,
		"capital_text":               c.CapitalText,
		"contract_number":            c.ContractNumber,
		"contract_date":              c.ContractDate,
		"current_date":               c.CurrentDate,
		"contract_services":          c.ContractServices,
		"hourly_payment_text":        c.HourlyPaymentText,
		"bank_details":               c.BankDetails,
		"executor_full_name":         c.ExecutorFullName,
		"executor_short_name":        c.ExecutorShortName,
		"executor_legal_address":     c.ExecutorLegalAddress,
		"executor_postal_address":    c.ExecutorPostalAddress,
		"executor_inn":               c.ExecutorINN,
		"executor_ogrn":              c.ExecutorOGRN,
		"executor_bank_account":      c.ExecutorBankAccount,
		"executor_bank_name":         c.ExecutorBankName,
		"executor_bik":               c.ExecutorBIK,
		"executor_corr_account":      c.ExecutorCorrAccount,
		"executor_email":             c.ExecutorEmail,
		"executor_phone":             c.ExecutorPhone,
		"exec_is_sole_proprietor":    c.ExecIsSoleProprietor,
		"exec_is_llc":                c.ExecIsLLC,
	}
}

type ContractSummary struct {
	Context  ContractContext
	Services []ServiceLineItem
}
