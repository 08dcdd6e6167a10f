package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rmfarias/gatekeeper/backend/internal/auth"
	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	users  repo.UserRepo
	tokens *auth.TokenManager
}

// NewAuthService constructs an AuthService backed by the provided repo and
// token manager.
func NewAuthService(users repo.UserRepo, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login verifies the username/password pair and returns a signed session
// token plus the authenticated user. An unknown username and a wrong
// password both return ErrUnauthorized — the caller cannot tell which,
// so login cannot be used to probe for valid usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return "", domain.User{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", domain.User{}, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return token, user, nil
}
