package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/nurpe/contractgen/internal/model"
)

type ProfileRepository interface {
	ProfileStore
	List(ctx context.Context) ([]model.ExecutorProfile, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, profile *model.ExecutorProfile) error
	Update(ctx context.Context, profile *model.ExecutorProfile) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertByName(ctx context.Context, profile *model.ExecutorProfile) error
}

type ProfileService struct {
	repo ProfileRepository
	log  zerolog.Logger
}

func NewProfileService(repo ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

func (s *ProfileService) List(ctx context.Context) ([]model.ExecutorProfile, error) {
	return s.repo.List(ctx)
}

func (s *ProfileService) Get(ctx context.Context, id uuid.UUID) (*model.ExecutorProfile, error) {
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translateProfileError(err, id)
	}
	return profile, nil
}

func (s *ProfileService) Create(ctx context.Context, principal model.Principal, input model.ExecutorProfile) (*model.ExecutorProfile, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	profile := normalizeProfile(input)
	profile.ID = uuid.Nil
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &profile); err != nil {
		return nil, translateProfileError(err, uuid.Nil)
	}
	s.log.Info().Str("profile", profile.ProfileName).Str("by", principal.Username).Msg("executor profile created")
	return &profile, nil
}

func (s *ProfileService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input model.ExecutorProfile) (*model.ExecutorProfile, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	profile := normalizeProfile(input)
	profile.ID = id
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &profile); err != nil {
		return nil, translateProfileError(err, id)
	}
	return s.Get(ctx, id)
}

func (s *ProfileService) SetDefault(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.repo.SetDefault(ctx, id); err != nil {
		return translateProfileError(err, id)
	}
	return nil
}

// Delete не удаляет основной и последний профиль
func (s *ProfileService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		return translateProfileError(err, id)
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return fmt.Errorf("%w: cannot delete the last executor profile", ErrConflict)
	}
	if profile.IsDefault {
		return fmt.Errorf("%w: cannot delete the default executor profile", ErrConflict)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateProfileError(err, id)
	}
	s.log.Info().Str("profile", profile.ProfileName).Str("by", principal.Username).Msg("executor profile deleted")
	return nil
}

type profileFile struct {
	Profiles []model.ExecutorProfile `yaml:"profiles"`
}

// Import загружает профили из YAML (profiles: [...]).
func (s *ProfileService) Import(ctx context.Context, r io.Reader) ([]model.ExecutorProfile, error) {
	var doc profileFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty profile file", ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: parse profile file: %v", ErrInvalidInput, err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("%w: no profiles in file", ErrInvalidInput)
	}

	imported := make([]model.ExecutorProfile, 0, len(doc.Profiles))
	var defaultID uuid.UUID
	for i, entry := range doc.Profiles {
		profile := normalizeProfile(entry)
		if err := validateProfile(profile); err != nil {
			return imported, fmt.Errorf("profile #%d: %w", i+1, err)
		}
		wantDefault := entry.IsDefault
		if err := s.repo.UpsertByName(ctx, &profile); err != nil {
			return imported, fmt.Errorf("profile %q: %w", profile.ProfileName, err)
		}
		if wantDefault {
			defaultID = profile.ID
		}
		imported = append(imported, profile)
	}

	if defaultID == uuid.Nil {
		if _, err := s.repo.GetDefault(ctx); err == nil {
			return imported, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return imported, err
		}
		defaultID = imported[0].ID
	}
	if err := s.repo.SetDefault(ctx, defaultID); err != nil {
		return imported, err
	}
	for i := range imported {
		imported[i].IsDefault = imported[i].ID == defaultID
	}
	return imported, nil
}

func normalizeProfile(p model.ExecutorProfile) model.ExecutorProfile {
	p.ProfileName = strings.TrimSpace(p.ProfileName)
	p.OrgType = model.ExecutorOrgType(strings.ToLower(strings.TrimSpace(string(p.OrgType))))
	p.FullName = strings.TrimSpace(p.FullName)
	p.ShortName = strings.TrimSpace(p.ShortName)
	p.LegalAddress = strings.TrimSpace(p.LegalAddress)
	p.PostalAddress = strings.TrimSpace(p.PostalAddress)
	p.INN = strings.TrimSpace(p.INN)
	p.OGRN = strings.TrimSpace(p.OGRN)
	p.BankAccount = strings.TrimSpace(p.BankAccount)
	p.BankName = strings.TrimSpace(p.BankName)
	p.BIK = strings.TrimSpace(p.BIK)
	p.CorrAccount = strings.TrimSpace(p.CorrAccount)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	if p.ShortName == "" {
		p.ShortName = p.FullName
	}
	return p
}

func validateProfile(p model.ExecutorProfile) error {
	switch {
	case p.ProfileName == "":
		return fmt.Errorf("%w: profile_name is required", ErrInvalidInput)
	case p.FullName == "":
		return fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	case !p.OrgType.Valid():
		return fmt.Errorf("%w: org_type %q", ErrInvalidInput, p.OrgType)
	}
	if p.INN != "" && !digitsOfLength(p.INN, 10, 12) {
		return fmt.Errorf("%w: inn %q", ErrInvalidInput, p.INN)
	}
	return nil
}

func digitsOfLength(s string, lengths ...int) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	for _, n := range lengths {
		if len(s) == n {
			return true
		}
	}
	return false
}

func translateProfileError(err error, id uuid.UUID) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: executor profile %s", ErrNotFound, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: profile name is taken", ErrConflict)
	default:
		return err
	}
}
