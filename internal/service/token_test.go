package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timz-app/timz-api/config"
	apperrors "github.com/timz-app/timz-api/internal/errors"
	"github.com/timz-app/timz-api/internal/model"
)

func newTestTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:         "test-secret-key",
		ExpirationTime: ttl,
		Issuer:         "timz-api",
	})
}

func TestTokenIssueVerifyRoundTrip(t *testing.T) {
	tokens := newTestTokenService(30 * time.Minute)
	userID := uuid.New()
	roles := []model.Role{model.RoleClient, model.RolePro}

	signed, err := tokens.Issue(userID, roles, 3)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)

	subject, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
	assert.Equal(t, roles, claims.Roles)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "timz-api", claims.Issuer)

	// exp - iat equals the configured TTL
	assert.Equal(t, 30*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenVerifyExpired(t *testing.T) {
	tokens := newTestTokenService(-time.Minute)

	signed, err := tokens.Issue(uuid.New(), []model.Role{model.RoleClient}, 0)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestTokenVerifyTampered(t *testing.T) {
	tokens := newTestTokenService(time.Hour)

	signed, err := tokens.Issue(uuid.New(), []model.Role{model.RoleClient}, 0)
	require.NoError(t, err)

	_, err = tokens.Verify(signed + "x")
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)

	_, err = tokens.Verify("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestTokenVerifyWrongSecret(t *testing.T) {
	tokens := newTestTokenService(time.Hour)

	other := NewTokenService(config.JWTConfig{
		Secret:         "a-different-secret",
		ExpirationTime: time.Hour,
		Issuer:         "timz-api",
	})
	signed, err := other.Issue(uuid.New(), []model.Role{model.RoleClient}, 0)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestTokenVerifyWrongIssuer(t *testing.T) {
	tokens := newTestTokenService(time.Hour)

	other := NewTokenService(config.JWTConfig{
		Secret:         "test-secret-key",
		ExpirationTime: time.Hour,
		Issuer:         "some-other-service",
	})
	signed, err := other.Issue(uuid.New(), []model.Role{model.RoleClient}, 0)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestTokenConfiguredAlgorithm(t *testing.T) {
	hs512 := NewTokenService(config.JWTConfig{
		Secret:           "test-secret-key",
		ExpirationTime:   time.Hour,
		Issuer:           "timz-api",
		SigningAlgorithm: "HS512",
	})

	signed, err := hs512.Issue(uuid.New(), []model.Role{model.RoleClient}, 0)
	require.NoError(t, err)

	claims, err := hs512.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, []model.Role{model.RoleClient}, claims.Roles)

	// The verifier only accepts its configured algorithm, even with a valid
	// signature under another one.
	hs256 := newTestTokenService(time.Hour)
	_, err = hs256.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)

	signed, err = hs256.Issue(uuid.New(), []model.Role{model.RoleClient}, 0)
	require.NoError(t, err)
	_, err = hs512.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestTokenVerifyMissingRequiredFields(t *testing.T) {
	tokens := newTestTokenService(time.Hour)
	now := time.Now().UTC()

	// Correctly signed token with an empty role snapshot
	noRoles := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			Issuer:    "timz-api",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noRoles).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)

	// Subject is not a UUID
	badSubject := Claims{
		Roles: []model.Role{model.RoleClient},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			Issuer:    "timz-api",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, badSubject).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)

	// No expiry at all
	noExpiry := Claims{
		Roles: []model.Role{model.RoleClient},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  uuid.New().String(),
			Issuer:   "timz-api",
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, noExpiry).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)
	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}
