package models

import "time"

// User is the database representation of a users row.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	FullName     string `db:"full_name"`
	Company      string `db:"company"`
	PasswordHash string `json:"-" db:"password_hash"`
	AuthProvider string `db:"auth_provider"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
