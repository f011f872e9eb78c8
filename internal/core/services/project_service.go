package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/freelanceflow/ff_backend/internal/apperrors"
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	activity    portssvc.ActivitySvcFacade
}

// NewProjectService creates the project management service.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, activity portssvc.ActivitySvcFacade) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo, activity: activity}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, userID string, req dto.CreateProjectRequest) (*domain.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", apperrors.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = domain.ProjectDraft
	}

	budget := decimal.Zero
	if req.Budget != nil {
		budget = *req.Budget
	}
	spent := decimal.Zero
	if req.Spent != nil {
		spent = *req.Spent
	}
	if budget.IsNegative() || spent.IsNegative() {
		return nil, fmt.Errorf("%w: budget and spent cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		UserID:      userID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Status:      status,
		Budget:      budget,
		Spent:       spent,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("project_id", project.ProjectID))
		return nil, err
	}

	_ = s.activity.LogActivity(ctx, userID, domain.ActivityProject, fmt.Sprintf("New project %q created", project.Name), decimal.Zero)

	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID))
	return &project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, userID string, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, userID, projectID)
}

func (s *projectService) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, err
	}
	return projects, nil
}

func (s *projectService) UpdateProject(ctx context.Context, userID string, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	fields := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: project name cannot be empty", apperrors.ErrValidation)
		}
		fields["name"] = *req.Name
	}
	if req.ClientID != nil {
		fields["clientId"] = *req.ClientID
	}
	if req.Status != nil {
		fields["status"] = string(*req.Status)
	}
	if req.Budget != nil {
		if req.Budget.IsNegative() {
			return nil, fmt.Errorf("%w: budget cannot be negative", apperrors.ErrValidation)
		}
		fields["budget"] = *req.Budget
	}
	if req.Spent != nil {
		if req.Spent.IsNegative() {
			return nil, fmt.Errorf("%w: spent cannot be negative", apperrors.ErrValidation)
		}
		fields["spent"] = *req.Spent
	}
	if req.StartDate != nil {
		fields["startDate"] = *req.StartDate
	}
	if req.DueDate != nil {
		fields["dueDate"] = *req.DueDate
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return s.projectRepo.FindProjectByID(ctx, userID, projectID)
	}

	project, err := s.projectRepo.UpdateProjectFields(ctx, userID, projectID, fields)
	if err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, err
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, userID string, projectID string) error {
	project, err := s.projectRepo.FindProjectByID(ctx, userID, projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.DeleteProject(ctx, userID, projectID); err != nil {
		s.LogError(ctx, err, "Failed to delete project", slog.String("project_id", projectID))
		return err
	}

	_ = s.activity.LogActivity(ctx, userID, domain.ActivityDeletion, fmt.Sprintf("Project %q removed", project.Name), decimal.Zero)

	s.LogInfo(ctx, "Project deleted", slog.String("project_id", projectID))
	return nil
}
