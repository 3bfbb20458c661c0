package model

// CompanyRecord данные контрагента из реестра, пустые поля равны "".
type CompanyRecord struct {
	INN               string `json:"inn"`
	KPP               string `json:"kpp"`
	OGRN              string `json:"ogrn"`
	ShortName         string `json:"name"`
	FullName          string `json:"full_name"`
	LegalAddress      string `json:"legal_address"`
	PostalAddress     string `json:"postal_address"`
	Director          string `json:"director"`
	DirectorPosition  string `json:"director_position"`
	BankAccount       string `json:"bank_account"`
	BankName          string `json:"bank_name"`
	BIK               string `json:"bik"`
	CorrAccount       string `json:"corr_account"`
	LegalForm         string `json:"legal_form"`
	AuthorizedCapital string `json:"capital"`
}

// DisplayName возвращает краткое наименование, а при его отсутствии полное.
func (c CompanyRecord) DisplayName() string {
	if c.ShortName != "" {
		return c.ShortName
	}
	return c.FullName
}
