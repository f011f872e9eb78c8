package models

import "time"

// Client is the database representation of a client row.
type Client struct {
	ClientID  string `db:"client_id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Company   string `db:"company"`
	Phone     string `db:"phone"`
	AvatarURL string `db:"avatar_url"`
	Notes     string `db:"notes"`
	AuditFields
}

// AuditFields holds the audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"updated_at"`
}
