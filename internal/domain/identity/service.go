package identity

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/medirate/medirate/internal/platform/apperr"
	"github.com/medirate/medirate/internal/platform/auth"
)

const minPasswordLen = 8

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return apperr.Validation("invalid email address")
	}
	if len(password) < minPasswordLen {
		return apperr.Validation("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// Register creates an account with role "user". Elevated roles are assigned
// by an admin afterwards, or bootstrapped via the CLI.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{Name: name, Email: email, PasswordHash: hash, Role: auth.RoleUser}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateAdmin creates an account with the admin role. Only reachable from the
// CLI bootstrap command, never from a route.
func (s *Service) CreateAdmin(ctx context.Context, name, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{Name: name, Email: email, PasswordHash: hash, Role: auth.RoleAdmin}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns the user with a signed bearer token.
// Unknown email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", apperr.Unauthorized("invalid credentials")
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, "", apperr.Unauthorized("invalid credentials")
	}
	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile changes name and/or email of the requester's own account.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		email = normalizeEmail(email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, apperr.Validation("invalid email address")
		}
		if email != u.Email {
			if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing.ID != id {
				return nil, apperr.Conflict("email already registered")
			}
			u.Email = email
		}
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password and stores a new one. The new
// password must differ from the current one.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, current) {
		return apperr.Unauthorized("current password is incorrect")
	}
	if current == next {
		return apperr.Validation("new password must differ from the current password")
	}
	if len(next) < minPasswordLen {
		return apperr.Validation("password must be at least %d characters", minPasswordLen)
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	if !auth.ValidRole(role) {
		return nil, apperr.Validation("invalid role: %s", role)
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Permissions returns the static role capability matrix.
func (s *Service) Permissions() map[string][]string {
	return RolePermissions
}
