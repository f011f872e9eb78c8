package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus indicates the state of a project. Projects are never
// transitioned automatically; status is a plain user-edited field.
type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on-hold"
)

// Project represents a unit of client work with an independent budget.
// Budget and Spent are both user-set; nothing ties them to invoice totals.
type Project struct {
	ProjectID   string          `json:"projectID"`
	UserID      string          `json:"userID"`
	ClientID    string          `json:"clientID"` // empty when no client is linked
	Name        string          `json:"name"`
	Status      ProjectStatus   `json:"status"`
	Budget      decimal.Decimal `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	StartDate   *time.Time      `json:"startDate"`
	DueDate     *time.Time      `json:"dueDate"`
	Description string          `json:"description"`
	AuditFields
}
