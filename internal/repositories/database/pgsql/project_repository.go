package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/freelanceflow/ff_backend/internal/apperrors"
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	"github.com/freelanceflow/ff_backend/internal/models"
	"github.com/freelanceflow/ff_backend/internal/utils/fieldmap"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

func toModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		UserID:      d.UserID,
		ClientID:    d.ClientID,
		Name:        d.Name,
		Status:      models.ProjectStatus(d.Status),
		Budget:      d.Budget,
		Spent:       d.Spent,
		StartDate:   d.StartDate,
		DueDate:     d.DueDate,
		Description: d.Description,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		UserID:      m.UserID,
		ClientID:    m.ClientID,
		Name:        m.Name,
		Status:      domain.ProjectStatus(m.Status),
		Budget:      m.Budget,
		Spent:       m.Spent,
		StartDate:   m.StartDate,
		DueDate:     m.DueDate,
		Description: m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const projectColumns = `project_id, user_id, client_id, name, status, budget, spent, start_date, due_date, description, created_at, updated_at`

func scanProject(row pgx.Row) (models.Project, error) {
	var m models.Project
	var clientID sql.NullString
	err := row.Scan(
		&m.ProjectID,
		&m.UserID,
		&clientID,
		&m.Name,
		&m.Status,
		&m.Budget,
		&m.Spent,
		&m.StartDate,
		&m.DueDate,
		&m.Description,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if clientID.Valid {
		m.ClientID = clientID.String
	}
	return m, err
}

// SaveProject inserts a new project.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := toModelProject(project)

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	// client_id is a nullable foreign key; an empty string means no link.
	var clientID sql.NullString
	if m.ClientID != "" {
		clientID = sql.NullString{String: m.ClientID, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.ProjectID,
		m.UserID,
		clientID,
		m.Name,
		m.Status,
		m.Budget,
		m.Spent,
		m.StartDate,
		m.DueDate,
		m.Description,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: project with ID %s already exists", apperrors.ErrDuplicate, m.ProjectID)
		}
		return fmt.Errorf("failed to save project %s: %w", m.ProjectID, err)
	}
	return nil
}

// FindProjectByID retrieves one project owned by userID.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, userID string, projectID string) (*domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE project_id = $1 AND user_id = $2;
	`
	m, err := scanProject(r.Pool.QueryRow(ctx, query, projectID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	d := toDomainProject(m)
	return &d, nil
}

// ListProjects retrieves all projects owned by userID, newest first.
func (r *PgxProjectRepository) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, toDomainProject(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// UpdateProjectFields applies a partial update built from API field names.
func (r *PgxProjectRepository) UpdateProjectFields(ctx context.Context, userID string, projectID string, fields map[string]any) (*domain.Project, error) {
	columns := fieldmap.ToStorage(fields)
	if len(columns) == 0 {
		return r.FindProjectByID(ctx, userID, projectID)
	}

	// An empty clientId clears the link.
	if v, ok := columns["client_id"]; ok {
		if s, isStr := v.(string); isStr && s == "" {
			columns["client_id"] = nil
		}
	}

	setClauses, args := buildSetClauses(columns, 3)
	args = append([]any{projectID, userID}, args...)

	query := fmt.Sprintf(`
		UPDATE projects
		SET %s, updated_at = NOW()
		WHERE project_id = $1 AND user_id = $2
		RETURNING `+projectColumns+`;
	`, strings.Join(setClauses, ", "))

	m, err := scanProject(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project %s: %w", projectID, err)
	}
	d := toDomainProject(m)
	return &d, nil
}

// DeleteProject removes a project permanently.
func (r *PgxProjectRepository) DeleteProject(ctx context.Context, userID string, projectID string) error {
	query := `DELETE FROM projects WHERE project_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
