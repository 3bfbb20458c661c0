package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/contractgen/internal/model"
)

type fakeLookup struct {
	companies map[string]model.CompanyRecord
	backup    bool
	calls     []string
}

func (f *fakeLookup) Lookup(_ context.Context, taxID string, _ bool) (model.CompanyRecord, error) {
	f.calls = append(f.calls, taxID)
	company, ok := f.companies[taxID]
	if !ok {
		return model.CompanyRecord{}, ErrNotFound
	}
	return company, nil
}

func (f *fakeLookup) HasBackup() bool { return f.backup }

type fakeRenderer struct {
	rendered []model.ContractContext
	err      error
}

func (f *fakeRenderer) Render(ctx model.ContractContext) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.rendered = append(f.rendered, ctx)
	return []byte("docx:" + ctx.ContractNumber), nil
}

type fakeSummary struct {
	got []model.ContractSummary
}

func (f *fakeSummary) Generate(summary model.ContractSummary) ([]byte, error) {
	f.got = append(f.got, summary)
	return []byte("%PDF"), nil
}

type fakeExporter struct {
	got [][]model.HistoryRecord
}

func (f *fakeExporter) Generate(records []model.HistoryRecord) ([]byte, error) {
	f.got = append(f.got, records)
	return []byte("xlsx"), nil
}

// fakeProfiles повторяет правила репозитория для основного профиля.
type fakeProfiles struct {
	items map[uuid.UUID]model.ExecutorProfile
}

func newFakeProfiles(profiles ...model.ExecutorProfile) *fakeProfiles {
	f := &fakeProfiles{items: map[uuid.UUID]model.ExecutorProfile{}}
	for _, p := range profiles {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		f.items[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) List(context.Context) ([]model.ExecutorProfile, error) {
	out := make([]model.ExecutorProfile, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileName < out[j].ProfileName })
	return out, nil
}

func (f *fakeProfiles) Get(_ context.Context, id uuid.UUID) (*model.ExecutorProfile, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) GetDefault(context.Context) (*model.ExecutorProfile, error) {
	for _, p := range f.items {
		if p.IsDefault {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfiles) Count(context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeProfiles) Create(_ context.Context, profile *model.ExecutorProfile) error {
	for _, p := range f.items {
		if p.ProfileName == profile.ProfileName {
			return gorm.ErrDuplicatedKey
		}
	}
	if len(f.items) == 0 {
		profile.IsDefault = true
	}
	if profile.IsDefault {
		f.clearDefault()
	}
	profile.ID = uuid.New()
	f.items[profile.ID] = *profile
	return nil
}

func (f *fakeProfiles) Update(_ context.Context, profile *model.ExecutorProfile) error {
	current, ok := f.items[profile.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	updated := *profile
	updated.IsDefault = current.IsDefault
	f.items[profile.ID] = updated
	return nil
}

func (f *fakeProfiles) SetDefault(_ context.Context, id uuid.UUID) error {
	p, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.clearDefault()
	p.IsDefault = true
	f.items[id] = p
	return nil
}

func (f *fakeProfiles) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeProfiles) UpsertByName(_ context.Context, profile *model.ExecutorProfile) error {
	for id, p := range f.items {
		if p.ProfileName == profile.ProfileName {
			profile.ID = id
			profile.IsDefault = p.IsDefault
			f.items[id] = *profile
			return nil
		}
	}
	profile.ID = uuid.New()
	profile.IsDefault = false
	f.items[profile.ID] = *profile
	return nil
}

func (f *fakeProfiles) clearDefault() {
	for id, p := range f.items {
		p.IsDefault = false
		f.items[id] = p
	}
}

func (f *fakeProfiles) byName(name string) model.ExecutorProfile {
	for _, p := range f.items {
		if p.ProfileName == name {
			return p
		}
	}
	return model.ExecutorProfile{}
}

type fakeHistory struct {
	records []model.HistoryRecord
}

func (f *fakeHistory) Create(_ context.Context, record *model.HistoryRecord) error {
	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistory) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]model.HistoryRecord, error) {
	var out []model.HistoryRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].UserID == userID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeHistory) Get(_ context.Context, id, userID uuid.UUID) (*model.HistoryRecord, error) {
	for _, r := range f.records {
		if r.ID == id && r.UserID == userID {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeUsers struct {
	byName map[string]model.User
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	if _, ok := f.byName[user.Username]; ok {
		return gorm.ErrDuplicatedKey
	}
	user.ID = uuid.New()
	f.byName[user.Username] = *user
	return nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := f.byName[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(user model.User) (string, time.Time, error) {
	return "token-" + user.Username, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nil
}
