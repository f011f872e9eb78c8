package services

import (
	"context"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/freelanceflow/ff_backend/internal/dto"
)

// ProjectReaderSvc defines read operations for project data
type ProjectReaderSvc interface {
	// GetProjectByID retrieves a specific project owned by userID.
	GetProjectByID(ctx context.Context, userID string, projectID string) (*domain.Project, error)

	// ListProjects retrieves all projects owned by userID.
	ListProjects(ctx context.Context, userID string) ([]domain.Project, error)
}

// ProjectWriterSvc defines write operations for project data
type ProjectWriterSvc interface {
	// CreateProject validates and persists a new project.
	CreateProject(ctx context.Context, userID string, req dto.CreateProjectRequest) (*domain.Project, error)

	// UpdateProject applies a partial update to an existing project.
	UpdateProject(ctx context.Context, userID string, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)

	// DeleteProject removes a project and records a deletion activity.
	DeleteProject(ctx context.Context, userID string, projectID string) error
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
