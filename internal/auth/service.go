package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/quotedesk/quotedesk/internal/shared"
	"github.com/quotedesk/quotedesk/internal/users"
)

// UserFinder resolves a login name to an account.
type UserFinder interface {
	FindByLogin(ctx context.Context, login string) (*users.User, error)
}

// Service wraps authentication business rules.
type Service struct {
	users  UserFinder
	tokens *TokenStore
}

// NewService constructs a new Service.
func NewService(users UserFinder, tokens *TokenStore) *Service {
	return &Service{users: users, tokens: tokens}
}

// Authenticate validates credentials. login may be an email or a username.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*users.User, error) {
	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a bearer token.
func (s *Service) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, login, password)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token.Value, ExpiresAt: token.ExpiresAt, User: profileOf(user)}, nil
}

// Logout revokes the presented token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}
