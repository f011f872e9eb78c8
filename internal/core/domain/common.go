package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// DateOnly is the wire format for calendar dates (issue date, due date).
// Comparisons on formatted values are equivalent to chronological order.
const DateOnly = "2006-01-02"
