package contract

import (
	"strconv"
	"strings"
	"time"

	"github.com/nurpe/contractgen/internal/legalform"
	"github.com/nurpe/contractgen/internal/model"
	"github.com/nurpe/contractgen/internal/pricing"
	"github.com/nurpe/contractgen/internal/rutext"
)

const (
	numberPrefix = "DOG-"
	isoDate      = "2006-01-02"

	capitalNotApplicable = "не применимо"
	largeCapitalFrom     = 100_000
)

type Builder struct {
	Now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{Now: time.Now}
}

func (b *Builder) CurrentTime() time.Time {
	if b == nil || b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// Build собирает контекст договора; terms и executor могут быть nil.
func (b *Builder) Build(company model.CompanyRecord, terms *model.ContractTerms, executor *model.ExecutorProfile) model.ContractContext {
	now := b.CurrentTime()

	ctx := model.ContractContext{
		CustomerINN:              company.INN,
		CustomerKPP:              company.KPP,
		CustomerOGRN:             company.OGRN,
		CustomerName:             rutext.FixCaps(company.ShortName),
		CustomerFullName:         rutext.FixCaps(company.FullName),
		CustomerLegalAddress:     rutext.FixCaps(company.LegalAddress),
		CustomerPostalAddress:    rutext.FixCaps(company.PostalAddress),
		CustomerDirector:         rutext.FixCaps(company.Director),
		CustomerDirectorPosition: rutext.FixCaps(company.DirectorPosition),
		CustomerBankAccount:      company.BankAccount,
		CustomerBankName:         rutext.FixCaps(company.BankName),
		CustomerBIK:              company.BIK,
		CustomerCorrAccount:      company.CorrAccount,
		CurrentDate:              rutext.FormatDate(now),
	}

	ctx.ContractNumber, ctx.IssuedOn = contractIdentity(terms, now)
	ctx.ContractDate = rutext.FormatDate(ctx.IssuedOn)
	if terms != nil {
		ctx.ContractServices = terms.Services
		ctx.HourlyPaymentText = pricing.Compose(terms.PricingServices, terms.PackingPercentage, terms.PrepaymentAmount)
		ctx.BankDetails = terms.BankDetails
	}

	classified := legalform.Classify(legalform.Input{
		LegalForm:      company.LegalForm,
		FullName:       company.FullName,
		ShortName:      company.ShortName,
		SignatoryName:  ctx.CustomerDirector,
		SignatoryTitle: ctx.CustomerDirectorPosition,
	})
	ctx.IsOOO = classified.IsLLC()
	ctx.IsIP = classified.IsSoleProprietor()
	ctx.IsAO = classified.IsJointStock()
	ctx.CustomerLegalBasis = classified.LegalBasis
	ctx.CustomerActsAs = classified.SignatoryName
	ctx.CustomerPosition = classified.SignatoryTitle
	ctx.CustomerPositionGenitive = classified.SignatoryTitleGenitive

	ctx.LargeCapital, ctx.CapitalText = capitalClause(company.AuthorizedCapital)

	if executor != nil {
		applyExecutor(&ctx, executor)
	}
	return ctx
}

// без корректной ISO-даты номер и дата генерируются заново
func contractIdentity(terms *model.ContractTerms, now time.Time) (string, time.Time) {
	if terms != nil {
		if date, err := time.Parse(isoDate, strings.TrimSpace(terms.ContractDate)); err == nil {
			number := strings.TrimSpace(terms.ContractNumber)
			if number == "" {
				number = GenerateNumber(now)
			}
			return number, date
		}
	}
	return GenerateNumber(now), now
}

func GenerateNumber(now time.Time) string {
	return numberPrefix + now.Format("20060102150405")
}

func capitalClause(raw string) (bool, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == capitalNotApplicable {
		return false, ""
	}
	capital, err := strconv.Atoi(raw)
	if err != nil || capital < largeCapitalFrom {
		return false, ""
	}
	return true, "с уставным капиталом " + raw + " рублей"
}

func applyExecutor(ctx *model.ContractContext, executor *model.ExecutorProfile) {
	ctx.ExecutorFullName = executor.FullName
	ctx.ExecutorShortName = executor.ShortName
	ctx.ExecutorLegalAddress = executor.LegalAddress
	ctx.ExecutorPostalAddress = executor.PostalAddress
	ctx.ExecutorINN = executor.INN
	ctx.ExecutorOGRN = executor.OGRN
	ctx.ExecutorBankAccount = executor.BankAccount
	ctx.ExecutorBankName = executor.BankName
	ctx.ExecutorBIK = executor.BIK
	ctx.ExecutorCorrAccount = executor.CorrAccount
	ctx.ExecutorEmail = executor.Email
	ctx.ExecutorPhone = executor.Phone
	ctx.ExecIsSoleProprietor = executor.OrgType == model.ExecutorOrgTypeIP
	ctx.ExecIsLLC = executor.OrgType == model.ExecutorOrgTypeOOO
}
