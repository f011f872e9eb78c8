package domain

import "time"

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents an account holder. Every client, project, invoice and
// activity row is scoped to exactly one user.
type User struct {
	UserID       string       `json:"userID"`
	Email        string       `json:"email"`
	FullName     string       `json:"fullName"`
	Company      string       `json:"company"`
	PasswordHash string       `json:"-"`
	AuthProvider AuthProvider `json:"authProvider"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // soft delete
}

// GoogleUserInfo holds the subset of the Google ID token payload the
// signup path needs.
type GoogleUserInfo struct {
	Subject string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}
