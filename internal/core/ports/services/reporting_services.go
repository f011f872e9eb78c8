package services

import (
	"context"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/freelanceflow/ff_backend/internal/dto"
)

// ReportingSvcFacade aggregates dashboard figures. It is a pure builder
// over the session snapshot so the dashboard always reflects the same
// data the rest of the session sees.
type ReportingSvcFacade interface {
	// BuildDashboard assembles totals, the six-month revenue trend, top
	// clients, status distribution, counts and recent activity from the
	// loaded session data.
	BuildDashboard(clients []domain.Client, projects []domain.Project, invoices []domain.Invoice, logs []domain.ActivityLog) *dto.DashboardResponse
}

// ExportSvcFacade renders downloadable documents from session data.
type ExportSvcFacade interface {
	// ExportClientsCSV renders the client list as CSV.
	ExportClientsCSV(ctx context.Context, clients []domain.Client) ([]byte, string, error)

	// ExportProjectsCSV renders the project list as CSV.
	ExportProjectsCSV(ctx context.Context, projects []domain.Project, clients []domain.Client) ([]byte, string, error)

	// ExportInvoicesCSV renders the invoice list as CSV.
	ExportInvoicesCSV(ctx context.Context, invoices []domain.Invoice, clients []domain.Client) ([]byte, string, error)

	// ExportSummaryCSV renders the multi-section financial summary as CSV.
	ExportSummaryCSV(ctx context.Context, invoices []domain.Invoice, clients []domain.Client) ([]byte, string, error)

	// ExportInvoicePDF renders a single invoice as PDF. The owning user's
	// profile is loaded for the FROM block; a zero-valued client renders
	// as "N/A".
	ExportInvoicePDF(ctx context.Context, userID string, invoice domain.Invoice, client domain.Client) ([]byte, string, error)
}
