package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/AnshRaj112/journal-backend/internal/apperr"
	"github.com/AnshRaj112/journal-backend/internal/database"
	"github.com/AnshRaj112/journal-backend/internal/models"
	"github.com/AnshRaj112/journal-backend/internal/validate"
	"github.com/AnshRaj112/journal-backend/pkg/utils"
)

// UserStore is the persistence the account service needs.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

var errInvalidCredentials = apperr.Unauthorized("Invalid credentials")

// AccountService registers users and checks their credentials.
type AccountService struct {
	users UserStore
}

func NewAccountService(users UserStore) *AccountService {
	return &AccountService{users: users}
}

// Register creates an account for a new lower-cased email.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	if !validate.IsEmail(email) {
		return nil, apperr.Validation("Valid email required")
	}
	if err := validate.Password(password); err != nil {
		return nil, err
	}
	email = strings.ToLower(email)

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.Conflict("Email already registered")
	case !errors.Is(err, database.ErrNotFound):
		return nil, apperr.Internal("Registration failed", err)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, apperr.Internal("Registration failed", err)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal("Registration failed", err)
	}

	u := &models.User{ID: id.String(), Email: email, PasswordHash: hash}
	if name != "" {
		u.Name = &name
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, apperr.Internal("Registration failed", err)
	}
	return u, nil
}

// Login returns the account for a matching email/password pair. Unknown
// emails and wrong passwords fail identically.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if !validate.IsEmail(email) {
		return nil, apperr.Validation("Valid email required")
	}

	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, database.ErrNotFound) {
		utils.BurnPasswordCheck(password)
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Internal("Login failed", err)
	}

	ok, err := utils.VerifyPassword(password, u.PasswordHash)
	if err != nil || !ok {
		return nil, errInvalidCredentials
	}
	return u, nil
}
