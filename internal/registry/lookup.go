package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nurpe/contractgen/internal/model"
)

type Provider interface {
	Name() string
	Fetch(ctx context.Context, taxID string) (model.CompanyRecord, error)
}

type Cache interface {
	// nil, nil при промахе
	Get(ctx context.Context, taxID string) (*model.CompanyRecord, error)
	Put(ctx context.Context, taxID string, rec model.CompanyRecord) error
}

type Source struct {
	Provider Provider
	// только по явному запросу
	Backup bool
}

// Service ищет компанию по ИНН: кэш, источники по порядку, затем fallback (его ответ не кэшируется).
type Service struct {
	log      zerolog.Logger
	cache    Cache
	fallback Provider
	sources  []Source
}

func NewService(log zerolog.Logger, cache Cache, fallback Provider, sources ...Source) *Service {
	return &Service{
		log:      log,
		cache:    cache,
		fallback: fallback,
		sources:  sources,
	}
}

func (s *Service) HasBackup() bool {
	for _, src := range s.sources {
		if src.Backup {
			return true
		}
	}
	return false
}

func (s *Service) Lookup(ctx context.Context, taxID string, useBackup bool) (model.CompanyRecord, error) {
	taxID = strings.TrimSpace(taxID)
	if err := ValidateTaxID(taxID); err != nil {
		return model.CompanyRecord{}, err
	}

	if rec, ok := s.fromCache(ctx, taxID); ok {
		return rec, nil
	}

	var errs []error
	for _, src := range s.sources {
		if src.Backup && !useBackup {
			continue
		}
		rec, err := src.Provider.Fetch(ctx, taxID)
		if err == nil {
			s.toCache(ctx, taxID, rec)
			return rec, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.CompanyRecord{}, ctxErr
		}
		s.log.Warn().Err(err).Str("source", src.Provider.Name()).Str("inn", taxID).Msg("registry source failed")
		errs = append(errs, err)
	}

	if s.fallback != nil {
		rec, err := s.fallback.Fetch(ctx, taxID)
		if err == nil {
			s.log.Info().Str("source", s.fallback.Name()).Str("inn", taxID).Msg("company served from fallback")
			return rec, nil
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return model.CompanyRecord{}, fmt.Errorf("%w: %q", ErrNotFound, taxID)
	}
	return model.CompanyRecord{}, fmt.Errorf("%w: %q: %w", ErrNotFound, taxID, errors.Join(errs...))
}

func (s *Service) fromCache(ctx context.Context, taxID string) (model.CompanyRecord, bool) {
	if s.cache == nil {
		return model.CompanyRecord{}, false
	}
	rec, err := s.cache.Get(ctx, taxID)
	if err != nil {
		s.log.Warn().Err(err).Str("inn", taxID).Msg("registry cache read failed")
		return model.CompanyRecord{}, false
	}
	if rec == nil {
		return model.CompanyRecord{}, false
	}
	return *rec, true
}

func (s *Service) toCache(ctx context.Context, taxID string, rec model.CompanyRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, taxID, rec); err != nil {
		s.log.Warn().Err(err).Str("inn", taxID).Msg("registry cache write failed")
	}
}
