// Package auth issues and verifies the signed, time-bound tokens that
// identify the single site administrator.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/carvingsite/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Principal is the identity carried by a token.
type Principal struct {
	Username string `json:"username"`
}

// Claims is the token payload: {username, iat, exp}.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenService signs and verifies HS256 tokens with a process-wide secret.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenService requires a non-empty secret; there is no fallback key.
func NewTokenService(secret string, validity time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if validity <= 0 {
		return nil, errors.New("token validity must be positive")
	}
	return &TokenService{secret: []byte(secret), validity: validity, now: time.Now}, nil
}

// Issue signs a token for p that expires after the configured validity.
func (s *TokenService) Issue(p Principal) (string, error) {
	return s.IssueWithValidity(p, s.validity)
}

// IssueWithValidity signs a token for p overriding the configured lifetime.
func (s *TokenService) IssueWithValidity(p Principal, validity time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Username: p.Username,
	})

	return token.SignedString(s.secret)
}

// Verify checks signature, algorithm and expiry. Every failure yields
// common.ErrInvalidToken; callers cannot tell expired from forged.
func (s *TokenService) Verify(tokenString string) (*Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Principal{Username: claims.Username}, nil
}

// ExtractBearer parses an Authorization header value of the exact form
// "Bearer <token>". It reports false when the header is empty, the prefix
// differs (case-sensitive) or no token follows it.
func ExtractBearer(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
