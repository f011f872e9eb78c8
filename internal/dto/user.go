package dto

import (
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a local account.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
	Company  string `json:"company"`
}

// LoginRequest defines the credentials for a local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating the profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FullName *string `json:"fullName"`
	Company  *string `json:"company"`
}

// UserResponse defines the data returned for a user profile.
type UserResponse struct {
	UserID       string              `json:"userID"`
	Email        string              `json:"email"`
	FullName     string              `json:"fullName"`
	Company      string              `json:"company"`
	AuthProvider domain.AuthProvider `json:"authProvider"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Email:        u.Email,
		FullName:     u.FullName,
		Company:      u.Company,
		AuthProvider: u.AuthProvider,
		CreatedAt:    u.CreatedAt,
	}
}
