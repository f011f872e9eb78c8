package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/freelanceflow/ff_backend/internal/apperrors"
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portsrepo "github.com/freelanceflow/ff_backend/internal/core/ports/repositories"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"log/slog"
)

type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
	activity   portssvc.ActivitySvcFacade
}

// NewClientService creates the client management service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, activity portssvc.ActivitySvcFacade) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo, activity: activity}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: client name is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("%w: client email is required", apperrors.ErrValidation)
	}

	now := time.Now()
	client := domain.Client{
		ClientID:  uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
		Notes:     req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("client_id", client.ClientID))
		return nil, err
	}

	_ = s.activity.LogActivity(ctx, userID, domain.ActivityClient, fmt.Sprintf("New client %q added", client.Name), decimal.Zero)

	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, err
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, userID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	fields := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: client name cannot be empty", apperrors.ErrValidation)
		}
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, fmt.Errorf("%w: client email cannot be empty", apperrors.ErrValidation)
		}
		fields["email"] = *req.Email
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.AvatarURL != nil {
		fields["avatarUrl"] = *req.AvatarURL
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) == 0 {
		return s.clientRepo.FindClientByID(ctx, userID, clientID)
	}

	client, err := s.clientRepo.UpdateClientFields(ctx, userID, clientID, fields)
	if err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, userID string, clientID string) error {
	client, err := s.clientRepo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		return err
	}

	if err := s.clientRepo.DeleteClient(ctx, userID, clientID); err != nil {
		s.LogError(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		return err
	}

	_ = s.activity.LogActivity(ctx, userID, domain.ActivityDeletion, fmt.Sprintf("Client %q removed", client.Name), decimal.Zero)

	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	return nil
}
