package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rmfarias/gatekeeper/backend/internal/auth"
	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

// UserService implements operator account management. All of its operations
// are admin-gated at the routing layer; the service itself guards the rules
// that hold regardless of who calls (hashing, self-deletion, role names).
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// UserInput carries the writable user fields from the HTTP layer.
// Password is plaintext here and exists only long enough to be hashed.
type UserInput struct {
	Username string
	Password string
	Name     string
	Role     string
}

// Create validates and persists a new operator account.
func (s *UserService) Create(ctx context.Context, in UserInput) (domain.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return domain.User{}, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if in.Password == "" {
		return domain.User{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Role == "" {
		in.Role = domain.RolePorteiro
	}
	if !domain.ValidRole(in.Role) {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: hash: %w", err)
	}

	created, err := s.users.Create(ctx, domain.User{
		Username:     in.Username,
		Name:         in.Name,
		Role:         in.Role,
		PasswordHash: hash,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return created, nil
}

// Update overwrites the provided fields of an existing account. Empty input
// fields keep their current value; a non-empty password is re-hashed.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UserInput) (domain.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}

	if strings.TrimSpace(in.Username) != "" {
		current.Username = in.Username
	}
	if strings.TrimSpace(in.Name) != "" {
		current.Name = in.Name
	}
	if in.Role != "" {
		if !domain.ValidRole(in.Role) {
			return domain.User{}, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
		}
		current.Role = in.Role
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("service.UserService.Update: hash: %w", err)
		}
		current.PasswordHash = hash
	}

	updated, err := s.users.Update(ctx, current)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an account. An operator cannot delete themself — there must
// always be someone left holding the keys.
func (s *UserService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if callerID == id {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrValidation)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}

// List returns all operator accounts ordered by username.
// Always returns a non-nil slice so callers can safely range over it.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// EnsureAdmin seeds the default admin account on first boot so the system is
// never locked out. It is a no-op when any admin already exists.
func (s *UserService) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	n, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("service.UserService.EnsureAdmin: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	_, err = s.Create(ctx, UserInput{
		Username: "admin",
		Password: password,
		Name:     "Administrador",
		Role:     domain.RoleAdmin,
	})
	if err != nil && !errors.Is(err, domain.ErrConflict) {
		return false, fmt.Errorf("service.UserService.EnsureAdmin: %w", err)
	}
	return err == nil, nil
}
