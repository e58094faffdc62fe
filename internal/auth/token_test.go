package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "pat@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(uuid.New(), "pat@example.com")
	require.NoError(t, err)

	other := NewIssuer("other-secret", time.Hour)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Issue(uuid.New(), "pat@example.com")
	require.NoError(t, err)

	issuer.now = time.Now

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
