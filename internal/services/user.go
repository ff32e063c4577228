package services

import (
	"context"
	"errors"

	"github.com/gotodo/webapp/internal/store"
	"github.com/gotodo/webapp/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService encapsulates account use-cases: registration and
// credential verification.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates a new account with a bcrypt password hash. It fails
// with ErrEmailExists when the email is already taken.
func (s *UserService) Register(ctx context.Context, name, email, password string) (types.User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, ErrEmailExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	return s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	})
}

// Authenticate verifies a password against the stored hash. It fails with
// ErrNoSuchEmail when no user has that email and ErrBadPassword when the
// password does not match.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrNoSuchEmail
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrBadPassword
	}

	return user, nil
}
