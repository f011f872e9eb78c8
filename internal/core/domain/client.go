package domain

// Client represents a customer the freelancer bills.
// Clients are owned by exactly one user; deleting a client does not cascade
// to invoices or projects that reference it (they render "N/A" downstream).
type Client struct {
	ClientID  string `json:"clientID"`
	UserID    string `json:"userID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatarURL"`
	Notes     string `json:"notes"`
	AuditFields
}
