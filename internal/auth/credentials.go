package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"todolist/models"
	"todolist/repository"
)

// bcryptCost is the fixed work factor for password hashes.
const bcryptCost = 10

// CredentialService registers users and checks login credentials.
type CredentialService struct {
	users repository.UserRepositoryI
}

func NewCredentialService(users repository.UserRepositoryI) *CredentialService {
	return &CredentialService{users: users}
}

// Register validates the form fields, hashes the password and persists a
// new user. Returns ErrMissingFields or ErrPasswordMismatch on bad input
// and repository.ErrUsernameTaken when the username already exists.
func (s *CredentialService) Register(ctx context.Context, username, password, confirmation string) (*models.User, error) {
	if username == "" || password == "" || confirmation == "" {
		return nil, ErrMissingFields
	}
	if password != confirmation {
		return nil, ErrPasswordMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, username, string(hash))
}

// Verify checks a username/password pair and returns the matching user.
// An unknown username and a wrong password both satisfy
// errors.Is(err, ErrBadCredentials); the hash comparison itself is
// constant-time via bcrypt.
func (s *CredentialService) Verify(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnknownUser
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}
