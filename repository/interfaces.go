package repository

import (
	"context"

	"todolist/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// SessionRepositoryI defines operations on stored session tokens.
type SessionRepositoryI interface {
	Create(ctx context.Context, token string, userID int64) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// TaskRepositoryI defines operations on Task entities. Every read and
// update is scoped to the owning user.
type TaskRepositoryI interface {
	ListForUser(ctx context.Context, userID int64) ([]models.Task, error)
	Create(ctx context.Context, userID int64, description string) (*models.Task, error)
	SetCompletion(ctx context.Context, taskID, userID int64, complete bool) error
}
