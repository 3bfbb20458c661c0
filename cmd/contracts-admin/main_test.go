package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contractgen/internal/model"
)

type recordingCreator struct {
	username, password string
	role               model.UserRole
}

func (r *recordingCreator) CreateUser(_ context.Context, username, password string, role model.UserRole) (*model.User, error) {
	r.username, r.password, r.role = username, password, role
	return &model.User{ID: uuid.New(), Username: username, Role: role}, nil
}

func TestCreateUserFlags(t *testing.T) {
	creator := &recordingCreator{}
	var out bytes.Buffer

	err := createUser(context.Background(), creator, []string{"--username", "boss", "--password=secret1", "--admin"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "boss", creator.username)
	assert.Equal(t, "secret1", creator.password)
	assert.Equal(t, model.UserRoleAdmin, creator.role)
	assert.Contains(t, out.String(), "created user boss (admin)")

	err = createUser(context.Background(), creator, []string{"--username", "manager", "--password", "secret1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleUser, creator.role)
}

func TestCreateUserRequiresFlags(t *testing.T) {
	err := createUser(context.Background(), &recordingCreator{}, []string{"--username", "boss"}, io.Discard)
	require.ErrorIs(t, err, errUsage)

	err = createUser(context.Background(), &recordingCreator{}, []string{"--unknown"}, io.Discard)
	require.Error(t, err)
}

type recordingImporter struct {
	content string
}

func (r *recordingImporter) Import(_ context.Context, src io.Reader) ([]model.ExecutorProfile, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	r.content = string(raw)
	return []model.ExecutorProfile{
		{ID: uuid.New(), ProfileName: "Основной", IsDefault: true},
		{ID: uuid.New(), ProfileName: "Запасной"},
	}, nil
}

func TestImportProfilesReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: []\n"), 0o600))

	importer := &recordingImporter{}
	var out bytes.Buffer
	err := importProfiles(context.Background(), importer, []string{"-f", path}, &out, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "profiles: []\n", importer.content)
	assert.Contains(t, out.String(), "Основной (default)")
	assert.Contains(t, out.String(), "Запасной\n")
}

func TestImportProfilesErrors(t *testing.T) {
	err := importProfiles(context.Background(), &recordingImporter{}, nil, io.Discard, zerolog.Nop())
	require.ErrorIs(t, err, errUsage)

	err = importProfiles(context.Background(), &recordingImporter{}, []string{"--file", filepath.Join(t.TempDir(), "missing.yaml")}, io.Discard, zerolog.Nop())
	require.ErrorIs(t, err, os.ErrNotExist)
}
