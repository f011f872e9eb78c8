package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityLog is the database representation of an activity_logs row.
type ActivityLog struct {
	ActivityID string          `db:"activity_id"`
	UserID     string          `db:"user_id"`
	Type       string          `db:"type"`
	Message    string          `db:"message"`
	Amount     decimal.Decimal `db:"amount"`
	CreatedAt  time.Time       `db:"created_at"`
}
