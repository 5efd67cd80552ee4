package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/medtrack/emr/internal/platform/auth"
	"github.com/medtrack/emr/internal/platform/validate"
)

var (
	// ErrInvalidCredentials is returned on any login failure. It is
	// deliberately the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email is already registered")
)

type Service struct {
	users UserRepository
	token auth.TokenConfig
}

func NewService(users UserRepository, token auth.TokenConfig) *Service {
	return &Service{users: users, token: token}
}

// Register creates a user account with a hashed credential and issues a
// bearer token for the new account.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validate.New().
		Required("name", req.Name).
		Required("email", req.Email).
		Email("email", req.Email).
		Required("password", req.Password).
		MinLen("password", req.Password, 6).
		Required("role", req.Role).
		OneOf("role", req.Role, Roles...).
		Err(); err != nil {
		return nil, err
	}

	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := auth.IssueToken(s.token, u.ID.String(), u.Name, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Token: token, User: u}, nil
}

// Login verifies a credential pair and issues a bearer token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validate.New().
		Required("email", req.Email).
		Email("email", req.Email).
		Required("password", req.Password).
		Err(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.token, u.ID.String(), u.Name, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Token: token, User: u}, nil
}

// GetUser returns the account with the given id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns accounts ordered by creation time.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}
