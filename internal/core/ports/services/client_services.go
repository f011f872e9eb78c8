package services

import (
	"context"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	"github.com/freelanceflow/ff_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a specific client owned by userID.
	GetClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error)

	// ListClients retrieves all clients owned by userID.
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient validates and persists a new client.
	CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error)

	// UpdateClient applies a partial update to an existing client.
	UpdateClient(ctx context.Context, userID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)

	// DeleteClient removes a client and records a deletion activity.
	DeleteClient(ctx context.Context, userID string, clientID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
