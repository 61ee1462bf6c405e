package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	tok, err := m.IssueUser("u-123")
	require.NoError(t, err)

	id, err := m.VerifyUser(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-123", id)
}

func TestAudiencesDoNotCross(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	userTok, err := m.IssueUser("u-123")
	require.NoError(t, err)
	storeTok, err := m.IssueStore("s-456")
	require.NoError(t, err)

	_, err = m.VerifyStore(userTok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = m.VerifyUser(storeTok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	id, err := m.VerifyStore(storeTok)
	require.NoError(t, err)
	assert.Equal(t, "s-456", id)
}

func TestExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	tok, err := m.IssueUser("u-123")
	require.NoError(t, err)

	_, err = m.VerifyUser(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestMissingAndGarbageTokens(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.VerifyUser("")
	assert.ErrorIs(t, err, ErrTokenMissing)

	_, err = m.VerifyUser("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestWrongSecretRejected(t *testing.T) {
	a := NewManager("secret-a", time.Hour)
	b := NewManager("secret-b", time.Hour)

	tok, err := a.IssueUser("u-123")
	require.NoError(t, err)

	_, err = b.VerifyUser(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordHashing(t *testing.T) {
	h, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, "hunter2"))
	assert.False(t, CheckPassword(h, "hunter3"))
}
