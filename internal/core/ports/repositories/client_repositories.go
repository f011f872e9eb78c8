package repositories

import (
	"context"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client owned by userID.
	FindClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error)

	// ListClients retrieves all clients owned by userID, newest first.
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClientFields applies a partial update. Keys are API field
	// names (camelCase); the repository maps them to columns.
	UpdateClientFields(ctx context.Context, userID string, clientID string, fields map[string]any) (*domain.Client, error)

	// DeleteClient removes a client permanently.
	DeleteClient(ctx context.Context, userID string, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
