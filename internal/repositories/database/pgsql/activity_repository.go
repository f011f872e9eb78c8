package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/freelanceflow/ff_backend/internal/apperrors"
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	"github.com/freelanceflow/ff_backend/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a new repository for activity log data.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

// SaveActivity appends one entry. The log is append-only; there is no
// update or delete path.
func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (activity_id, user_id, type, message, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		activity.ActivityID,
		activity.UserID,
		string(activity.Type),
		activity.Message,
		activity.Amount,
		activity.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: activity %s already exists", apperrors.ErrDuplicate, activity.ActivityID)
		}
		return fmt.Errorf("failed to save activity %s: %w", activity.ActivityID, err)
	}
	return nil
}

// ListRecentActivity retrieves the newest entries for userID, up to
// limit, newest first.
func (r *PgxActivityRepository) ListRecentActivity(ctx context.Context, userID string, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = domain.ActivityFeedLimit
	}

	query := `
		SELECT activity_id, user_id, type, message, amount, created_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	entries := []domain.ActivityLog{}
	for rows.Next() {
		var m models.ActivityLog
		err := rows.Scan(
			&m.ActivityID,
			&m.UserID,
			&m.Type,
			&m.Message,
			&m.Amount,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		entries = append(entries, domain.ActivityLog{
			ActivityID: m.ActivityID,
			UserID:     m.UserID,
			Type:       domain.ActivityType(m.Type),
			Message:    m.Message,
			Amount:     m.Amount,
			CreatedAt:  m.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}
