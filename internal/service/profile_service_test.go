package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contractgen/internal/model"
)

var (
	admin   = model.Principal{UserID: uuid.New(), Username: "admin", Role: model.UserRoleAdmin}
	regular = model.Principal{UserID: uuid.New(), Username: "manager", Role: model.UserRoleUser}
)

func validProfile(name string) model.ExecutorProfile {
	return model.ExecutorProfile{
		ProfileName: name,
		OrgType:     model.ExecutorOrgTypeIP,
		FullName:    "Индивидуальный предприниматель Лукманов Марат Ильдарович",
		ShortName:   "ИП Лукманов М.И.",
		INN:         "165500000000",
	}
}

func TestCreateProfileFirstBecomesDefault(t *testing.T) {
	repo := newFakeProfiles()
	svc := NewProfileService(repo, zerolog.Nop())

	first, err := svc.Create(context.Background(), admin, validProfile("Основной"))
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := svc.Create(context.Background(), admin, validProfile("Запасной"))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	third, err := svc.Create(context.Background(), admin, func() model.ExecutorProfile {
		p := validProfile("Новый")
		p.IsDefault = true
		return p
	}())
	require.NoError(t, err)
	assert.True(t, third.IsDefault)
	assert.False(t, repo.byName("Основной").IsDefault)
}

func TestCreateProfileNormalizesInput(t *testing.T) {
	svc := NewProfileService(newFakeProfiles(), zerolog.Nop())

	created, err := svc.Create(context.Background(), admin, model.ExecutorProfile{
		ProfileName: "  ООО  ",
		OrgType:     " OOO ",
		FullName:    ` ООО "Перевозчик" `,
	})
	require.NoError(t, err)
	assert.Equal(t, "ООО", created.ProfileName)
	assert.Equal(t, model.ExecutorOrgTypeOOO, created.OrgType)
	assert.Equal(t, `ООО "Перевозчик"`, created.ShortName)
}

func TestCreateProfileValidation(t *testing.T) {
	svc := NewProfileService(newFakeProfiles(), zerolog.Nop())

	cases := map[string]func(*model.ExecutorProfile){
		"no name":      func(p *model.ExecutorProfile) { p.ProfileName = " " },
		"no full name": func(p *model.ExecutorProfile) { p.FullName = "" },
		"bad org type": func(p *model.ExecutorProfile) { p.OrgType = "zao" },
		"bad inn":      func(p *model.ExecutorProfile) { p.INN = "12345" },
		"letters inn":  func(p *model.ExecutorProfile) { p.INN = "16550000ab" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProfile("Профиль")
			mutate(&p)
			_, err := svc.Create(context.Background(), admin, p)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestProfileWritesRequireAdmin(t *testing.T) {
	repo := newFakeProfiles(validProfile("Основной"))
	svc := NewProfileService(repo, zerolog.Nop())
	id := repo.byName("Основной").ID

	_, err := svc.Create(context.Background(), regular, validProfile("Другой"))
	require.ErrorIs(t, err, ErrPermissionDenied)
	_, err = svc.Update(context.Background(), regular, id, validProfile("Другой"))
	require.ErrorIs(t, err, ErrPermissionDenied)
	require.ErrorIs(t, svc.SetDefault(context.Background(), regular, id), ErrPermissionDenied)
	require.ErrorIs(t, svc.Delete(context.Background(), regular, id), ErrPermissionDenied)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateProfileDuplicateName(t *testing.T) {
	svc := NewProfileService(newFakeProfiles(validProfile("Основной")), zerolog.Nop())

	_, err := svc.Create(context.Background(), admin, validProfile("Основной"))
	require.ErrorIs(t, err, ErrConflict)
}

func TestUpdateProfileKeepsDefaultFlag(t *testing.T) {
	base := validProfile("Основной")
	base.IsDefault = true
	repo := newFakeProfiles(base)
	svc := NewProfileService(repo, zerolog.Nop())
	id := repo.byName("Основной").ID

	changed := validProfile("Основной")
	changed.Email = "info@example.com"
	updated, err := svc.Update(context.Background(), admin, id, changed)
	require.NoError(t, err)
	assert.Equal(t, "info@example.com", updated.Email)
	assert.True(t, updated.IsDefault)

	_, err = svc.Update(context.Background(), admin, uuid.New(), changed)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetDefaultIsExclusive(t *testing.T) {
	first := validProfile("Основной")
	first.IsDefault = true
	repo := newFakeProfiles(first, validProfile("Запасной"))
	svc := NewProfileService(repo, zerolog.Nop())

	require.NoError(t, svc.SetDefault(context.Background(), admin, repo.byName("Запасной").ID))
	assert.True(t, repo.byName("Запасной").IsDefault)
	assert.False(t, repo.byName("Основной").IsDefault)

	require.ErrorIs(t, svc.SetDefault(context.Background(), admin, uuid.New()), ErrNotFound)
}

func TestDeleteProfileGuards(t *testing.T) {
	only := validProfile("Единственный")
	only.IsDefault = true
	repo := newFakeProfiles(only)
	svc := NewProfileService(repo, zerolog.Nop())

	err := svc.Delete(context.Background(), admin, repo.byName("Единственный").ID)
	require.ErrorIs(t, err, ErrConflict)

	spare := validProfile("Запасной")
	spare.ID = uuid.New()
	repo.items[spare.ID] = spare
	err = svc.Delete(context.Background(), admin, repo.byName("Единственный").ID)
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.Delete(context.Background(), admin, repo.byName("Запасной").ID))
	assert.Len(t, repo.items, 1)

	require.ErrorIs(t, svc.Delete(context.Background(), admin, uuid.New()), ErrNotFound)
}

const profilesYAML = `
profiles:
  - profile_name: Основной
    org_type: ip
    full_name: Индивидуальный предприниматель Лукманов Марат Ильдарович
    short_name: ИП Лукманов М.И.
    inn: "165500000000"
  - profile_name: ООО
    org_type: ooo
    full_name: ООО "Перевозчик"
    is_default: true
`

func TestImportProfiles(t *testing.T) {
	repo := newFakeProfiles()
	svc := NewProfileService(repo, zerolog.Nop())

	imported, err := svc.Import(context.Background(), strings.NewReader(profilesYAML))
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.False(t, imported[0].IsDefault)
	assert.True(t, imported[1].IsDefault)
	assert.Equal(t, `ООО "Перевозчик"`, imported[1].ShortName)
	assert.True(t, repo.byName("ООО").IsDefault)

	// повторный импорт обновляет профили по имени
	again, err := svc.Import(context.Background(), strings.NewReader(profilesYAML))
	require.NoError(t, err)
	assert.Len(t, repo.items, 2)
	assert.Equal(t, imported[0].ID, again[0].ID)
}

func TestImportWithoutDefaultKeepsExisting(t *testing.T) {
	current := validProfile("Текущий")
	current.IsDefault = true
	repo := newFakeProfiles(current)
	svc := NewProfileService(repo, zerolog.Nop())

	_, err := svc.Import(context.Background(), strings.NewReader(`
profiles:
  - profile_name: Новый
    org_type: ip
    full_name: ИП Петров П.П.
`))
	require.NoError(t, err)
	assert.True(t, repo.byName("Текущий").IsDefault)
	assert.False(t, repo.byName("Новый").IsDefault)
}

func TestImportWithoutAnyDefaultPicksFirst(t *testing.T) {
	repo := newFakeProfiles()
	svc := NewProfileService(repo, zerolog.Nop())

	imported, err := svc.Import(context.Background(), strings.NewReader(`
profiles:
  - profile_name: Первый
    org_type: ip
    full_name: ИП Петров П.П.
  - profile_name: Второй
    org_type: ooo
    full_name: ООО "Второй"
`))
	require.NoError(t, err)
	assert.True(t, imported[0].IsDefault)
	assert.True(t, repo.byName("Первый").IsDefault)
}

func TestImportRejectsBadInput(t *testing.T) {
	svc := NewProfileService(newFakeProfiles(), zerolog.Nop())

	_, err := svc.Import(context.Background(), strings.NewReader(""))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Import(context.Background(), strings.NewReader("profiles: []"))
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Import(context.Background(), strings.NewReader("profiles: [{profile_name: x, org_type: zao, full_name: y}]"))
	require.ErrorIs(t, err, ErrInvalidInput)
}
