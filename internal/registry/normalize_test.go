package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contractgen/internal/model"
)

const dnCompanyPayload = `{
  "inn": "7707083893",
  "ogrn": "1027700132195",
  "company": {
    "kpp": "773601001",
    "opf": "ПАО",
    "company_names": {"short_name": "ПАО СБЕРБАНК", "full_name": "ПУБЛИЧНОЕ АКЦИОНЕРНОЕ ОБЩЕСТВО \"СБЕРБАНК РОССИИ\""},
    "address": {"line_address": "117312, Г. МОСКВА, УЛ. ВАВИЛОВА, Д. 19"},
    "managers": [{"name": "ГРЕФ ГЕРМАН ОСКАРОВИЧ", "position": "ПРЕЗИДЕНТ"}],
    "contacts": null
  }
}`

func TestNormalizeDataNewtonCompany(t *testing.T) {
	rec, err := NormalizeDataNewton([]byte(dnCompanyPayload))
	require.NoError(t, err)

	assert.Equal(t, model.CompanyRecord{
		INN:              "7707083893",
		KPP:              "773601001",
		OGRN:             "1027700132195",
		ShortName:        "ПАО СБЕРБАНК",
		FullName:         `ПУБЛИЧНОЕ АКЦИОНЕРНОЕ ОБЩЕСТВО "СБЕРБАНК РОССИИ"`,
		LegalAddress:     "117312, Г. МОСКВА, УЛ. ВАВИЛОВА, Д. 19",
		PostalAddress:    "117312, Г. МОСКВА, УЛ. ВАВИЛОВА, Д. 19",
		Director:         "ГРЕФ ГЕРМАН ОСКАРОВИЧ",
		DirectorPosition: "ПРЕЗИДЕНТ",
		LegalForm:        "ПАО",
	}, rec)
}

func TestNormalizeDataNewtonIsDeterministic(t *testing.T) {
	first, err := NormalizeDataNewton([]byte(dnCompanyPayload))
	require.NoError(t, err)
	second, err := NormalizeDataNewton([]byte(dnCompanyPayload))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeDataNewtonOwnerFallback(t *testing.T) {
	payload := `{"inn": "1234567890", "company": {
		"company_names": {"short_name": "ООО \"АЛЬФА\""},
		"managers": [],
		"owners": {"fl": [{"name": "ПЕТРОВ ПЁТР ПЕТРОВИЧ"}]}
	}}`
	rec, err := NormalizeDataNewton([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "ПЕТРОВ ПЁТР ПЕТРОВИЧ", rec.Director)
	assert.Equal(t, "Учредитель", rec.DirectorPosition)
	assert.Empty(t, rec.LegalAddress)
	assert.Empty(t, rec.BankAccount)
}

func TestNormalizeDataNewtonNoSignatory(t *testing.T) {
	rec, err := NormalizeDataNewton([]byte(`{"inn": "1234567890", "company": {}}`))
	require.NoError(t, err)
	assert.Equal(t, "1234567890", rec.INN)
	assert.Empty(t, rec.Director)
	assert.Empty(t, rec.DirectorPosition)
}

func TestNormalizeDataNewtonIndividual(t *testing.T) {
	payload := `{"inn": "165000000000", "ogrn": "318169000000000", "individual": {
		"fio": "ЛУКМАНОВ МАРАТ ИЛЬДАРОВИЧ",
		"address": {"line_address": "420000, Г. КАЗАНЬ"},
		"contacts": {"bank_account": "40802810000000000001", "bik": "049205603"}
	}}`
	rec, err := NormalizeDataNewton([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "ИП ЛУКМАНОВ МАРАТ ИЛЬДАРОВИЧ", rec.ShortName)
	assert.Equal(t, "Индивидуальный предприниматель ЛУКМАНОВ МАРАТ ИЛЬДАРОВИЧ", rec.FullName)
	assert.Equal(t, "ЛУКМАНОВ МАРАТ ИЛЬДАРОВИЧ", rec.Director)
	assert.Equal(t, "Индивидуальный предприниматель", rec.DirectorPosition)
	assert.Equal(t, "ИП", rec.LegalForm)
	assert.Equal(t, "420000, Г. КАЗАНЬ", rec.PostalAddress)
	assert.Equal(t, "40802810000000000001", rec.BankAccount)
	assert.Equal(t, "049205603", rec.BIK)
	assert.Empty(t, rec.KPP)
}

func TestNormalizeDataNewtonMalformed(t *testing.T) {
	for _, payload := range []string{
		`{"inn": "1234567890"}`,
		`{"company": null}`,
		`[]`,
		`not json`,
	} {
		_, err := NormalizeDataNewton([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformedResponse, payload)
	}

	_, err := NormalizeDataNewton([]byte(`{"inn": "1234567890", "status": "unknown"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `\"status\": \"unknown\"`)
}

func TestNormalizeFNSLegalEntity(t *testing.T) {
	payload := `{"items": [{"ЮЛ": {
		"ИНН": "7707083893", "КПП": "773601001", "ОГРН": "1027700132195",
		"НаимСокрЮЛ": "ПАО СБЕРБАНК", "НаимПолнЮЛ": "ПАО \"СБЕРБАНК РОССИИ\"",
		"ОКОПФ": "Публичные акционерные общества",
		"Руководитель": {"ФИО": "Греф Герман Оскарович", "Должность": "Президент"},
		"Адрес": {"Индекс": 117312, "Регион": "г. Москва", "Улица": "ул. Вавилова", "Дом": "д. 19", "Корпус": "1", "Квартира": "5"}
	}}]}`
	rec, err := NormalizeFNS([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "7707083893", rec.INN)
	assert.Equal(t, "1027700132195", rec.OGRN)
	assert.Equal(t, "ПАО СБЕРБАНК", rec.ShortName)
	assert.Equal(t, "Греф Герман Оскарович", rec.Director)
	assert.Equal(t, "Президент", rec.DirectorPosition)
	assert.Equal(t, "Публичные акционерные общества", rec.LegalForm)
	assert.Equal(t, "117312, г. Москва, ул. Вавилова, д. 19, корп. 1, кв. 5", rec.LegalAddress)
	assert.Equal(t, rec.LegalAddress, rec.PostalAddress)
}

func TestNormalizeFNSSoleProprietor(t *testing.T) {
	payload := `{"items": [{"ИП": {"ИННФЛ": "165000000000", "ОГРНИП": "318169000000000", "ФИОПолн": "Лукманов Марат Ильдарович"}}]}`
	rec, err := NormalizeFNS([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "165000000000", rec.INN)
	assert.Equal(t, "318169000000000", rec.OGRN)
	assert.Equal(t, "ИП Лукманов Марат Ильдарович", rec.ShortName)
	assert.Equal(t, "Индивидуальный предприниматель Лукманов Марат Ильдарович", rec.FullName)
	assert.Equal(t, "ИП", rec.LegalForm)
	assert.Empty(t, rec.LegalAddress)
}

func TestNormalizeFNSForeignBranch(t *testing.T) {
	payload := `{"items": [{"НР": {"ИНН": "9909000000", "НаимПредПолн": "Представительство компании Акме"}}]}`
	rec, err := NormalizeFNS([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "Представительство компании Акме", rec.ShortName)
	assert.Equal(t, "Представительство компании Акме", rec.FullName)
	assert.Equal(t, "Представительство иностранного юридического лица", rec.LegalForm)
}

func TestNormalizeFNSErrors(t *testing.T) {
	_, err := NormalizeFNS([]byte(`{"items": []}`))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NormalizeFNS([]byte(`{"items": [{"XX": {}}]}`))
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = NormalizeFNS([]byte(`{"items": [{"ЮЛ": {"Адрес": {"Индекс": {"a": 1}}}}]}`))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestNormalizeDaDataLegal(t *testing.T) {
	payload := `{"suggestions": [{"value": "ООО \"РОМАШКА\"", "data": {
		"type": "LEGAL", "inn": "1655000000", "kpp": "165501001", "ogrn": "1021602800000",
		"name": {"full_with_opf": "ОБЩЕСТВО С ОГРАНИЧЕННОЙ ОТВЕТСТВЕННОСТЬЮ \"РОМАШКА\"", "short_with_opf": "ООО \"РОМАШКА\""},
		"opf": {"short": "ООО"},
		"management": {"name": "Сидоров Олег Николаевич", "post": "ГЕНЕРАЛЬНЫЙ ДИРЕКТОР"},
		"address": {"value": "г Казань, ул Баумана, д 1"},
		"capital": {"value": 150000}
	}}]}`
	rec, err := NormalizeDaData([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, `ООО "РОМАШКА"`, rec.ShortName)
	assert.Equal(t, "ООО", rec.LegalForm)
	assert.Equal(t, "Сидоров Олег Николаевич", rec.Director)
	assert.Equal(t, "ГЕНЕРАЛЬНЫЙ ДИРЕКТОР", rec.DirectorPosition)
	assert.Equal(t, "г Казань, ул Баумана, д 1", rec.LegalAddress)
	assert.Equal(t, "150000", rec.AuthorizedCapital)
}

func TestNormalizeDaDataIndividual(t *testing.T) {
	payload := `{"suggestions": [{"data": {"type": "INDIVIDUAL", "inn": "165000000000", "name": {"full": "Лукманов Марат Ильдарович"}}}]}`
	rec, err := NormalizeDaData([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "ИП Лукманов Марат Ильдарович", rec.ShortName)
	assert.Equal(t, "Индивидуальный предприниматель", rec.DirectorPosition)
	assert.Empty(t, rec.AuthorizedCapital)
}

func TestNormalizeDaDataErrors(t *testing.T) {
	_, err := NormalizeDaData([]byte(`{"suggestions": []}`))
	assert.ErrorIs(t, err, ErrNotFound)

	for _, payload := range []string{`{}`, `{"suggestions": [{}]}`, `{"suggestions": [{"data": {"type": "FOREIGN"}}]}`} {
		_, err := NormalizeDaData([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformedResponse, payload)
	}
}

func TestValidateTaxID(t *testing.T) {
	assert.NoError(t, ValidateTaxID("9728006808"))
	assert.NoError(t, ValidateTaxID("165000000000"))

	for _, bad := range []string{"", "123", "12345678901", "97280068O8", "1234567890123"} {
		assert.ErrorIs(t, ValidateTaxID(bad), ErrInvalidTaxID, bad)
	}
}
