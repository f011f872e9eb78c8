package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus mirrors domain.ProjectStatus at the storage layer.
type ProjectStatus string

// Project is the database representation of a project row.
// ClientID uses string-empty-as-NULL handling in the repository.
type Project struct {
	ProjectID   string          `db:"project_id"`
	UserID      string          `db:"user_id"`
	ClientID    string          `db:"client_id"`
	Name        string          `db:"name"`
	Status      ProjectStatus   `db:"status"`
	Budget      decimal.Decimal `db:"budget"`
	Spent       decimal.Decimal `db:"spent"`
	StartDate   *time.Time      `db:"start_date"`
	DueDate     *time.Time      `db:"due_date"`
	Description string          `db:"description"`
	AuditFields
}
