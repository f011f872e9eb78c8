package dto

// LoginResponse represents the response for a successful login or
// registration.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
