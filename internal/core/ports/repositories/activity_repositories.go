package repositories

import (
	"context"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
)

// ActivityReader defines read operations for activity log data
type ActivityReader interface {
	// ListRecentActivity retrieves the newest entries for userID, up to
	// limit, newest first.
	ListRecentActivity(ctx context.Context, userID string, limit int) ([]domain.ActivityLog, error)
}

// ActivityWriter defines write operations for activity log data
type ActivityWriter interface {
	// SaveActivity appends an activity log entry.
	SaveActivity(ctx context.Context, activity domain.ActivityLog) error
}

// ActivityRepositoryFacade combines all activity-related repository interfaces
type ActivityRepositoryFacade interface {
	ActivityReader
	ActivityWriter
}
