package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"todolist/models"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists a (token, user) pair. The token is the primary key,
// so issuing the same token twice fails.
func (r *SessionRepository) Create(ctx context.Context, token string, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO authtokens (token, user_id) VALUES (?, ?)`, token, userID)
	return err
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s models.Session
	err := r.db.QueryRowContext(ctx, `SELECT token, user_id, created_at FROM authtokens WHERE token = ?`, token).
		Scan(&s.Token, &s.UserID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// DeleteByToken removes a stored token. Deleting an unknown token is a no-op.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM authtokens WHERE token = ?`, token)
	return err
}
