package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned when login credentials are invalid.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthPort is the interface other modules use to access auth
// functionality.
type AuthPort interface {
	Login(ctx context.Context, username, password string) (string, error)
	ValidateToken(ctx context.Context, token string) (string, error)
}

// AuthService handles authentication: credential checks and token
// issue/verify.
type AuthService struct {
	creds  CredentialStore
	hasher *PasswordHasher
	jwt    *JWTManager
}

// Compile-time interface check.
var _ AuthPort = (*AuthService)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(creds CredentialStore, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		creds:  creds,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Login checks the credentials and issues a bearer token. Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(_ context.Context, username, password string) (string, error) {
	hash, ok := s.creds.FindCredential(username)
	if !ok {
		return "", ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, hash) {
		return "", ErrInvalidCredentials
	}

	return s.jwt.Generate(username)
}

// ValidateToken verifies a bearer token and returns the identity it
// carries.
func (s *AuthService) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}
