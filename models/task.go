package models

// Task is a single to-do item owned by one user.
// It maps to the `tasks` table in SQLite.
type Task struct {
	ID          int64  `db:"task_id" json:"id"`
	UserID      int64  `db:"user_id" json:"user_id"`
	Description string `db:"task_desc" json:"description"`
	Complete    bool   `db:"is_complete" json:"complete"`
}
