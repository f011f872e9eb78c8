package repositories

import (
	"context"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project owned by userID.
	FindProjectByID(ctx context.Context, userID string, projectID string) (*domain.Project, error)

	// ListProjects retrieves all projects owned by userID, newest first.
	ListProjects(ctx context.Context, userID string) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProjectFields applies a partial update. Keys are API field
	// names (camelCase); the repository maps them to columns.
	UpdateProjectFields(ctx context.Context, userID string, projectID string, fields map[string]any) (*domain.Project, error)

	// DeleteProject removes a project permanently.
	DeleteProject(ctx context.Context, userID string, projectID string) error
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
