package services

import (
	"context"
	"crypto/subtle"

	"github.com/dmitrijs2005/carvingsite/internal/common"
	"github.com/dmitrijs2005/carvingsite/internal/server/auth"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the single admin account and mints access tokens.
type AuthService struct {
	tokens       *auth.TokenService
	username     []byte
	passwordHash []byte
}

// NewAuthService takes the admin username and its bcrypt password hash.
func NewAuthService(tokens *auth.TokenService, username, passwordHash string) *AuthService {
	return &AuthService{
		tokens:       tokens,
		username:     []byte(username),
		passwordHash: []byte(passwordHash),
	}
}

// Login returns a signed token for valid credentials and
// common.ErrorUnauthorized otherwise. The password hash is always checked
// so a wrong username costs the same as a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), s.username) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil

	if !userOK || !passOK || len(s.username) == 0 {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(auth.Principal{Username: username})
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Verify returns the principal of a valid token, or common.ErrInvalidToken.
func (s *AuthService) Verify(token string) (*auth.Principal, error) {
	return s.tokens.Verify(token)
}
