package dto

import (
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Name        string               `json:"name" binding:"required"`
	ClientID    string               `json:"clientID"`
	Status      domain.ProjectStatus `json:"status" binding:"omitempty,oneof=draft in-progress completed on-hold"`
	Budget      *decimal.Decimal     `json:"budget"`
	Spent       *decimal.Decimal     `json:"spent"`
	StartDate   *time.Time           `json:"startDate"`
	DueDate     *time.Time           `json:"dueDate"`
	Description string               `json:"description"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
type UpdateProjectRequest struct {
	Name        *string               `json:"name"`
	ClientID    *string               `json:"clientID"`
	Status      *domain.ProjectStatus `json:"status" binding:"omitempty,oneof=draft in-progress completed on-hold"`
	Budget      *decimal.Decimal      `json:"budget"`
	Spent       *decimal.Decimal      `json:"spent"`
	StartDate   *time.Time            `json:"startDate"`
	DueDate     *time.Time            `json:"dueDate"`
	Description *string               `json:"description"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID         string               `json:"projectID"`
	ClientID          string               `json:"clientID"`
	Name              string               `json:"name"`
	Status            domain.ProjectStatus `json:"status"`
	Budget            decimal.Decimal      `json:"budget"`
	Spent             decimal.Decimal      `json:"spent"`
	BudgetUtilization int                  `json:"budgetUtilization"` // whole percent, clamped to 100
	StartDate         *time.Time           `json:"startDate"`
	DueDate           *time.Time           `json:"dueDate"`
	Description       string               `json:"description"`
	CreatedAt         time.Time            `json:"createdAt"`
	LastUpdatedAt     time.Time            `json:"lastUpdatedAt"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO.
// utilization is computed by the service layer.
func ToProjectResponse(p *domain.Project, utilization int) ProjectResponse {
	return ProjectResponse{
		ProjectID:         p.ProjectID,
		ClientID:          p.ClientID,
		Name:              p.Name,
		Status:            p.Status,
		Budget:            p.Budget,
		Spent:             p.Spent,
		BudgetUtilization: utilization,
		StartDate:         p.StartDate,
		DueDate:           p.DueDate,
		Description:       p.Description,
		CreatedAt:         p.CreatedAt,
		LastUpdatedAt:     p.LastUpdatedAt,
	}
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}
