package services

import (
	"context"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ActivitySvcFacade records and serves the recent-activity feed.
type ActivitySvcFacade interface {
	// LogActivity appends an entry. Failures are reported but callers
	// treat logging as best effort; a failed log never rolls back the
	// mutation that triggered it.
	LogActivity(ctx context.Context, userID string, activityType domain.ActivityType, message string, amount decimal.Decimal) error

	// ListRecentActivity returns the newest entries, capped at
	// domain.ActivityFeedLimit.
	ListRecentActivity(ctx context.Context, userID string) ([]domain.ActivityLog, error)
}
