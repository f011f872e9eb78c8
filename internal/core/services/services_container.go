package services

import (
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Activity first; most other services record into the feed.
	container.Activity = NewActivityService(repos.ActivityRepo)

	container.Client = NewClientService(repos.ClientRepo, container.Activity)
	container.Project = NewProjectService(repos.ProjectRepo, container.Activity)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, container.Activity)
	container.Reporting = NewReportingService()
	container.Export = NewExportService(repos.UserRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
