package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityType categorizes an activity log entry.
type ActivityType string

const (
	ActivityPayment  ActivityType = "payment"
	ActivityInvoice  ActivityType = "invoice"
	ActivityProject  ActivityType = "project"
	ActivityClient   ActivityType = "client"
	ActivityDeletion ActivityType = "deletion"
	ActivityOverdue  ActivityType = "overdue"
)

// ActivityFeedLimit caps how many recent entries the feed surfaces. Older
// rows stay in the store but are never returned.
const ActivityFeedLimit = 20

// ActivityLog is an append-only record of a business event, shown in the
// recent-activity feed. Amount is zero for events with no monetary value.
type ActivityLog struct {
	ActivityID string          `json:"activityID"`
	UserID     string          `json:"userID"`
	Type       ActivityType    `json:"type"`
	Message    string          `json:"message"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Icon returns the display glyph for the activity type.
func (a ActivityLog) Icon() string {
	switch a.Type {
	case ActivityPayment:
		return "💰"
	case ActivityInvoice:
		return "📄"
	case ActivityProject:
		return "📁"
	case ActivityClient:
		return "👤"
	case ActivityOverdue:
		return "⏰"
	default:
		return "🗑️"
	}
}
