package models

// User represents a registered account.
// It maps to the `users` table in SQLite; the `password` column holds a bcrypt hash.
type User struct {
	ID           int64  `db:"user_id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password" json:"-"`
}

// Public returns a copy of the user safe to hand to templates.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
