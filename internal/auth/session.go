package auth

import (
	"context"

	"github.com/google/uuid"

	"todolist/models"
	"todolist/repository"
)

// SessionManager issues opaque bearer tokens and resolves them back to
// users. Tokens live in the `authtokens` table; many tokens may exist per
// user and none of them expire.
type SessionManager struct {
	sessions repository.SessionRepositoryI
	users    repository.UserRepositoryI
}

func NewSessionManager(sessions repository.SessionRepositoryI, users repository.UserRepositoryI) *SessionManager {
	return &SessionManager{sessions: sessions, users: users}
}

// Issue generates a random opaque token, persists it for userID and
// returns it for transport as a cookie value.
func (m *SessionManager) Issue(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := m.sessions.Create(ctx, token, userID); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps a token to its user. An empty, unknown or dangling token
// resolves to (nil, nil): an unauthenticated request falls through to a
// login redirect instead of erroring.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	s, err := m.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return m.users.GetByID(ctx, s.UserID)
}

// Revoke deletes a stored token server-side. The logout route does not
// call this (it only clears the client cookie); it exists for tests and
// administrative cleanup.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	return m.sessions.DeleteByToken(ctx, token)
}
