package token

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedArtelerist/OnlineBookStore/internal/constants"
	inErrors "github.com/RedArtelerist/OnlineBookStore/internal/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	c := context.Background()
	userId := uuid.New()

	signed, err := NewToken(userId, []string{constants.RoleUser}, "secret")
	require.NoError(t, err)

	claims, err := VerifyToken(c, signed, "secret")
	require.NoError(t, err)
	assert.EqualValues(t, userId.String(), claims.Subject)
	assert.True(t, claims.HasRole(constants.RoleUser))
	assert.False(t, claims.HasRole(constants.RoleAdmin))
}

func TestVerifyTokenWrongKey(t *testing.T) {
	c := context.Background()

	signed, err := NewToken(uuid.New(), []string{constants.RoleUser}, "secret")
	require.NoError(t, err)

	_, err = VerifyToken(c, signed, "other")
	assert.ErrorIs(t, err, inErrors.ErrTokenInvalid)
}

func TestUserIdFromContext(t *testing.T) {
	c := context.Background()

	_, err := UserIdFromContext(c)
	assert.ErrorIs(t, err, inErrors.ErrEmptyAuth)

	userId := uuid.New()
	signed, err := NewToken(userId, nil, "secret")
	require.NoError(t, err)
	claims, err := VerifyToken(c, signed, "secret")
	require.NoError(t, err)

	c = AttachClaims(c, claims)
	got, err := UserIdFromContext(c)
	require.NoError(t, err)
	assert.EqualValues(t, userId, got)
}
