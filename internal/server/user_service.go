package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hiremeplz/hiremeplz/internal/config"
	"github.com/hiremeplz/hiremeplz/internal/db"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// UserStore is the slice of the persistence layer the user service needs.
// *db.DB satisfies it; tests substitute stubs.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
}

// UserService provides business logic for account operations.
type UserService struct {
	store    UserStore
	password *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(store UserStore, password *config.PasswordConfig) *UserService {
	return &UserService{store: store, password: password}
}

// Register creates a new account and returns it with its auth identity.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	passwordHash, err := s.password.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, mapDBError(err, req.Email)
	}
	return user.API(), nil
}

// Login authenticates a user by email and password.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		// Burn a hash comparison anyway so missing accounts cost the same
		// as wrong passwords.
		s.password.VerifyPassword(req.Password, dummyHash)
		return nil, &ErrInvalidCredentials{}
	}

	if !s.password.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return user.API(), nil
}

// Get returns the account for an authenticated user ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}
	return user.API(), nil
}

// dummyHash is a bcrypt hash of a random string, used to equalize login
// timing for unknown emails.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"
