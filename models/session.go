package models

import "time"

// Session is a server-side record of an issued bearer token.
// It maps to the `authtokens` table in SQLite.
type Session struct {
	Token     string    `db:"token" json:"token"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
