package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_IssueAndValidate(t *testing.T) {
	svc := NewHMACService("s3cret", "skill-match", time.Hour)

	token, err := svc.Issue(" curator@example.com ")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "curator@example.com", claims.Subject)
	assert.Equal(t, ScopeCurator, claims.Scope)
	assert.Equal(t, "skill-match", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("s3cret", "", time.Minute)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_Rejects(t *testing.T) {
	svc := NewHMACService("s3cret", "skill-match", time.Hour)
	token, err := svc.Issue("alice")
	require.NoError(t, err)

	_, err = NewHMACService("other", "skill-match", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("s3cret", "someone-else", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Issue("  ")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("", "", time.Hour).Issue("alice")
	assert.ErrorIs(t, err, ErrNoSecret)
}
