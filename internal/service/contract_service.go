package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/contractgen/internal/contract"
	"github.com/nurpe/contractgen/internal/model"
)

type CompanyLookup interface {
	Lookup(ctx context.Context, taxID string, useBackup bool) (model.CompanyRecord, error)
	HasBackup() bool
}

type DocumentRenderer interface {
	Render(ctx model.ContractContext) ([]byte, error)
}

type SummaryGenerator interface {
	Generate(summary model.ContractSummary) ([]byte, error)
}

type HistoryExporter interface {
	Generate(records []model.HistoryRecord) ([]byte, error)
}

type ProfileStore interface {
	Get(ctx context.Context, id uuid.UUID) (*model.ExecutorProfile, error)
	GetDefault(ctx context.Context) (*model.ExecutorProfile, error)
}

type HistoryStore interface {
	Create(ctx context.Context, record *model.HistoryRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.HistoryRecord, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*model.HistoryRecord, error)
}

type ContractService struct {
	lookup       CompanyLookup
	profiles     ProfileStore
	history      HistoryStore
	renderer     DocumentRenderer
	summary      SummaryGenerator
	exporter     HistoryExporter
	builder      *contract.Builder
	historyLimit int
	log          zerolog.Logger
}

type ContractDeps struct {
	Lookup       CompanyLookup
	Profiles     ProfileStore
	History      HistoryStore
	Renderer     DocumentRenderer
	Summary      SummaryGenerator
	Exporter     HistoryExporter
	Builder      *contract.Builder
	HistoryLimit int
}

func NewContractService(deps ContractDeps, log zerolog.Logger) *ContractService {
	builder := deps.Builder
	if builder == nil {
		builder = contract.NewBuilder()
	}
	limit := deps.HistoryLimit
	if limit <= 0 {
		limit = 50
	}
	return &ContractService{
		lookup:       deps.Lookup,
		profiles:     deps.Profiles,
		history:      deps.History,
		renderer:     deps.Renderer,
		summary:      deps.Summary,
		exporter:     deps.Exporter,
		builder:      builder,
		historyLimit: limit,
		log:          log,
	}
}

type GenerateInput struct {
	Principal         model.Principal
	INN               string
	UseBackup         bool
	ExecutorProfileID *uuid.UUID
	Terms             model.ContractTerms
}

type DocumentResult struct {
	FileName string
	Content  []byte
}

type PreviewResult struct {
	Company  model.CompanyRecord
	Executor *model.ExecutorProfile
	Context  model.ContractContext
	FileName string
}

func (s *ContractService) CheckCompany(ctx context.Context, inn string, useBackup bool) (model.CompanyRecord, bool, error) {
	company, err := s.lookup.Lookup(ctx, inn, useBackup)
	if err != nil {
		return model.CompanyRecord{}, !useBackup && s.lookup.HasBackup(), err
	}
	return company, false, nil
}

func (s *ContractService) Generate(ctx context.Context, input GenerateInput) (*DocumentResult, error) {
	prepared, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	content, err := s.renderer.Render(prepared.Context)
	if err != nil {
		return nil, fmt.Errorf("render contract: %w", err)
	}

	record := &model.HistoryRecord{
		UserID:            input.Principal.UserID,
		INN:               prepared.Company.INN,
		CompanyName:       prepared.Context.CustomerName,
		FileName:          prepared.FileName,
		ContractNumber:    prepared.Context.ContractNumber,
		ContractDate:      prepared.Context.IssuedOn.Format(time.DateOnly),
		Services:          input.Terms.Services,
		PricingServices:   input.Terms.PricingServices,
		PackingPercentage: input.Terms.PackingPercentage,
		PrepaymentAmount:  input.Terms.PrepaymentAmount,
		BankDetails:       input.Terms.BankDetails,
	}
	if record.INN == "" {
		record.INN = strings.TrimSpace(input.INN)
	}
	if prepared.Executor != nil {
		id := prepared.Executor.ID
		record.ExecutorProfileID = &id
		record.ExecutorName = prepared.Executor.ShortName
	}
	if err := s.history.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}

	s.log.Info().
		Str("user", input.Principal.Username).
		Str("inn", record.INN).
		Str("contract_number", record.ContractNumber).
		Msg("contract generated")

	return &DocumentResult{FileName: prepared.FileName, Content: content}, nil
}

func (s *ContractService) Preview(ctx context.Context, input GenerateInput) (*PreviewResult, error) {
	return s.prepare(ctx, input)
}

func (s *ContractService) PreviewPDF(ctx context.Context, input GenerateInput) (*DocumentResult, error) {
	if s.summary == nil {
		return nil, fmt.Errorf("%w: pdf summary", ErrUnavailable)
	}
	prepared, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}
	content, err := s.summary.Generate(model.ContractSummary{
		Context:  prepared.Context,
		Services: input.Terms.PricingServices,
	})
	if err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}
	return &DocumentResult{
		FileName: strings.TrimSuffix(prepared.FileName, ".docx") + "-summary.pdf",
		Content:  content,
	}, nil
}

func (s *ContractService) History(ctx context.Context, principal model.Principal) ([]model.HistoryRecord, error) {
	return s.history.ListByUser(ctx, principal.UserID, s.historyLimit)
}

// DownloadFromHistory пересобирает договор; удалённый профиль заменяется основным
func (s *ContractService) DownloadFromHistory(ctx context.Context, principal model.Principal, id uuid.UUID) (*DocumentResult, error) {
	record, err := s.history.Get(ctx, id, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: history record %s", ErrNotFound, id)
		}
		return nil, err
	}

	company, err := s.lookup.Lookup(ctx, record.INN, true)
	if err != nil {
		return nil, err
	}

	var executor *model.ExecutorProfile
	if record.ExecutorProfileID != nil {
		executor, err = s.profiles.Get(ctx, *record.ExecutorProfileID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if executor == nil {
		if executor, err = s.defaultExecutor(ctx); err != nil {
			return nil, err
		}
	}

	content, err := s.renderer.Render(s.builder.Build(company, record.Terms(), executor))
	if err != nil {
		return nil, fmt.Errorf("render contract: %w", err)
	}
	return &DocumentResult{FileName: record.FileName, Content: content}, nil
}

func (s *ContractService) ExportHistory(ctx context.Context, principal model.Principal) (*DocumentResult, error) {
	records, err := s.history.ListByUser(ctx, principal.UserID, s.historyLimit)
	if err != nil {
		return nil, err
	}
	content, err := s.exporter.Generate(records)
	if err != nil {
		return nil, fmt.Errorf("export history: %w", err)
	}
	return &DocumentResult{
		FileName: fmt.Sprintf("contract-history-%s.xlsx", s.builder.CurrentTime().Format("20060102")),
		Content:  content,
	}, nil
}

func (s *ContractService) prepare(ctx context.Context, input GenerateInput) (*PreviewResult, error) {
	if input.Principal.UserID == uuid.Nil {
		return nil, ErrPermissionDenied
	}

	company, err := s.lookup.Lookup(ctx, input.INN, input.UseBackup)
	if err != nil {
		return nil, err
	}

	executor, err := s.resolveExecutor(ctx, input.ExecutorProfileID)
	if err != nil {
		return nil, err
	}

	terms := input.Terms
	built := s.builder.Build(company, &terms, executor)

	executorName := ""
	if executor != nil {
		executorName = executor.ShortName
	}
	fileName := contract.ComposeFilename(
		built.CustomerName,
		built.ContractNumber,
		contract.DisplayDate(built.IssuedOn.Format(time.DateOnly)),
		executorName,
	)

	return &PreviewResult{
		Company:  company,
		Executor: executor,
		Context:  built,
		FileName: fileName,
	}, nil
}

func (s *ContractService) resolveExecutor(ctx context.Context, id *uuid.UUID) (*model.ExecutorProfile, error) {
	if id == nil || *id == uuid.Nil {
		return s.defaultExecutor(ctx)
	}
	profile, err := s.profiles.Get(ctx, *id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: executor profile %s", ErrNotFound, *id)
		}
		return nil, err
	}
	return profile, nil
}

func (s *ContractService) defaultExecutor(ctx context.Context) (*model.ExecutorProfile, error) {
	profile, err := s.profiles.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

