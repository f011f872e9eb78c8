package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityRepositoryFacade
}

// NewActivityService creates the activity feed service.
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade) portssvc.ActivitySvcFacade {
	return &activityService{activityRepo: activityRepo}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

func (s *activityService) LogActivity(ctx context.Context, userID string, activityType domain.ActivityType, message string, amount decimal.Decimal) error {
	entry := domain.ActivityLog{
		ActivityID: uuid.NewString(),
		UserID:     userID,
		Type:       activityType,
		Message:    message,
		Amount:     amount,
		CreatedAt:  time.Now(),
	}

	if err := s.activityRepo.SaveActivity(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save activity log", slog.String("activity_type", string(activityType)))
		return err
	}
	return nil
}

func (s *activityService) ListRecentActivity(ctx context.Context, userID string) ([]domain.ActivityLog, error) {
	logs, err := s.activityRepo.ListRecentActivity(ctx, userID, domain.ActivityFeedLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent activity")
		return nil, err
	}
	return logs, nil
}
