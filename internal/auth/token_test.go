package auth

import (
	"testing"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("s3cret", time.Hour)
	raw, err := tm.Issue(Identity{UserID: 7, Name: "ada", Role: domain.RoleDomainManager})
	require.NoError(t, err)

	id, err := tm.Check(raw)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 7, Name: "ada", Role: domain.RoleDomainManager}, id)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	raw, err := NewTokenManager("one", time.Hour).Issue(Identity{UserID: 1})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Check(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("s3cret", time.Minute)
	issued := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issued }
	raw, err := tm.Issue(Identity{UserID: 1})
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = tm.Check(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("s3cret", time.Hour).Check("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
