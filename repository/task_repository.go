package repository

import (
	"context"
	"database/sql"
	"time"

	"todolist/models"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ListForUser returns every task owned by userID in insertion order.
func (r *TaskRepository) ListForUser(ctx context.Context, userID int64) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, user_id, task_desc, is_complete FROM tasks WHERE user_id = ? ORDER BY task_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Complete); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new incomplete task for userID.
// Returns ErrEmptyDescription if the description is empty.
func (r *TaskRepository) Create(ctx context.Context, userID int64, description string) (*models.Task, error) {
	if description == "" {
		return nil, ErrEmptyDescription
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (user_id, task_desc, is_complete) VALUES (?, ?, 0)`, userID, description)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Task{ID: id, UserID: userID, Description: description, Complete: false}, nil
}

// SetCompletion updates a task's completion flag, but only when the task
// is owned by userID. A task belonging to another user looks exactly like
// a missing task: both yield ErrNoSuchTask.
func (r *TaskRepository) SetCompletion(ctx context.Context, taskID, userID int64, complete bool) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_complete = ? WHERE task_id = ? AND user_id = ?`, complete, taskID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoSuchTask
	}
	return nil
}
