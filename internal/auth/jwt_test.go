package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contractgen/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	user := model.User{ID: uuid.New(), Username: "manager", Role: model.UserRoleAdmin}
	issuer := NewIssuer("secret", time.Hour)

	token, expiresAt, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	principal, err := NewParser("secret").Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, "manager", principal.Username)
	assert.True(t, principal.IsAdmin())
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, _, err := NewIssuer("secret", time.Hour).Issue(model.User{ID: uuid.New(), Role: model.UserRoleUser})
	require.NoError(t, err)

	_, err = NewParser("other").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := issuer.Issue(model.User{ID: uuid.New(), Role: model.UserRoleUser})
	require.NoError(t, err)

	_, err = NewParser("secret").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsUnknownRole(t *testing.T) {
	token, _, err := NewIssuer("secret", time.Hour).Issue(model.User{ID: uuid.New(), Role: "driver"})
	require.NoError(t, err)

	_, err = NewParser("secret").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
