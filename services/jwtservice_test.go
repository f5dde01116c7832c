package services_test

import (
	"context"
	"testing"
	"time"

	"personalhub/model"
	"personalhub/services"
	"personalhub/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) (*services.TokenService, *model.User) {
	t.Helper()
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "tokens@example.com")
	return services.NewTokenService(db, services.TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}), user
}

func TestIssueAndParse(t *testing.T) {
	tokens, user := newTokenService(t)

	pair, err := tokens.Issue(context.Background(), user)
	require.NoError(t, err)

	claims, err := tokens.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "personalhub", claims.Issuer)

	_, err = tokens.ParseAccessToken(pair.RefreshToken)
	assert.Error(t, err)
	_, err = tokens.ParseRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestRotateRejectsReuse(t *testing.T) {
	tokens, user := newTokenService(t)
	ctx := context.Background()

	pair, err := tokens.Issue(ctx, user)
	require.NoError(t, err)

	next, err := tokens.Rotate(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = tokens.Rotate(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = tokens.Rotate(ctx, next.RefreshToken)
	require.NoError(t, err)
}

func TestRevoke(t *testing.T) {
	tokens, user := newTokenService(t)
	ctx := context.Background()

	pair, err := tokens.Issue(ctx, user)
	require.NoError(t, err)
	require.NoError(t, tokens.Revoke(ctx, user.ID))

	_, err = tokens.Rotate(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRotateRejectsGarbage(t *testing.T) {
	tokens, _ := newTokenService(t)
	_, err := tokens.Rotate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestEmptySecretsRejectTokens(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "nosecret@example.com")
	tokens := services.NewTokenService(db, services.TokenConfig{})

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &model.AccessClaims{
		UserID: user.ID,
		Role:   model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	_, err = tokens.ParseAccessToken(forged)
	assert.ErrorIs(t, err, services.ErrMissingSecret)
	_, err = tokens.ParseRefreshToken(forged)
	assert.ErrorIs(t, err, services.ErrMissingSecret)

	_, err = tokens.Issue(context.Background(), user)
	assert.ErrorIs(t, err, services.ErrMissingSecret)
}
