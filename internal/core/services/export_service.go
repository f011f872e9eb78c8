package services

import (
	"context"
	"time"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/utils/csvexport"
	"github.com/freelanceflow/ff_backend/internal/utils/pdfexport"
)

type exportService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewExportService creates the CSV/PDF export service. The user
// repository supplies the profile for the PDF FROM block; everything
// else is rendered from caller-supplied session data.
func NewExportService(userRepo portsrepo.UserRepositoryFacade) portssvc.ExportSvcFacade {
	return &exportService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

func (s *exportService) ExportClientsCSV(ctx context.Context, clients []domain.Client) ([]byte, string, error) {
	return csvexport.Clients(clients, s.now())
}

func (s *exportService) ExportProjectsCSV(ctx context.Context, projects []domain.Project, clients []domain.Client) ([]byte, string, error) {
	return csvexport.Projects(projects, clients, s.now())
}

func (s *exportService) ExportInvoicesCSV(ctx context.Context, invoices []domain.Invoice, clients []domain.Client) ([]byte, string, error) {
	return csvexport.Invoices(invoices, clients, s.now())
}

func (s *exportService) ExportSummaryCSV(ctx context.Context, invoices []domain.Invoice, clients []domain.Client) ([]byte, string, error) {
	return csvexport.Summary(invoices, clients, s.now())
}

func (s *exportService) ExportInvoicePDF(ctx context.Context, userID string, invoice domain.Invoice, client domain.Client) ([]byte, string, error) {
	var profile domain.User
	if user, err := s.userRepo.FindUserByID(ctx, userID); err == nil {
		profile = *user
	}
	return pdfexport.Invoice(invoice, client, profile)
}
