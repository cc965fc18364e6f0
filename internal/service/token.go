package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/timz-app/timz-api/config"
	apperrors "github.com/timz-app/timz-api/internal/errors"
	"github.com/timz-app/timz-api/internal/model"
)

// Claims is the decoded payload of a bearer token: subject, a roles
// snapshot and the token_version counter at issue time.
type Claims struct {
	Roles        []model.Role `json:"roles"`
	TokenVersion int          `json:"token_version"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService issues and verifies signed, time-bounded claim sets. The
// signing secret and TTL come from the immutable process configuration;
// verification is a pure function of the token and the secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	method jwt.SigningMethod
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	// Config validation restricts the algorithm to the HMAC family.
	method := jwt.GetSigningMethod(cfg.SigningAlgorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.ExpirationTime,
		issuer: cfg.Issuer,
		method: method,
	}
}

// Issue builds a signed claim set for the user with exp = now + TTL.
func (s *TokenService) Issue(userID uuid.UUID, roles []model.Role, tokenVersion int) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Roles:        roles,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return signed, nil
}

// Verify decodes and validates a token string. Expired tokens fail with
// ErrTokenExpired; bad signatures, wrong algorithms and missing required
// fields fail with ErrTokenMalformed. Storage is never consulted.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != s.method.Alg() {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.WrapError(apperrors.ErrTokenExpired, err)
		}
		return nil, apperrors.WrapError(apperrors.ErrTokenMalformed, err)
	}
	if !token.Valid {
		return nil, apperrors.ErrTokenMalformed
	}

	if claims.Subject == "" || len(claims.Roles) == 0 {
		return nil, apperrors.ErrTokenMalformed
	}
	if _, err := claims.UserID(); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrTokenMalformed, err)
	}

	return claims, nil
}
