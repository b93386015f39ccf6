package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/camaleon/crm-api/internal/core/domain"
	"github.com/camaleon/crm-api/internal/core/ports"
)

type clientService struct {
	clients  ports.ClientRepository
	activity ports.ActivityRepository
	log      zerolog.Logger
}

// NewClientService returns a ClientService implementation.
func NewClientService(clients ports.ClientRepository, activity ports.ActivityRepository, log zerolog.Logger) ports.ClientService {
	return &clientService{clients: clients, activity: activity, log: log}
}

func (s *clientService) CreateClient(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	client, err := s.clients.Insert(ctx, &domain.Client{
		Name:      in.Name,
		LegalName: in.LegalName,
		Segment:   in.Segment,
		OwnerName: in.OwnerName,
		Email:     in.Email,
		Phone:     in.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create client")
		return nil, err
	}

	s.log.Info().Str("client_id", client.ID).Str("name", client.Name).Msg("client created")
	return client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
	}
	return s.clients.Update(ctx, id, patch)
}

func (s *clientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id)
}

func (s *clientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.clients.List(ctx)
}

func (s *clientService) ListActivity(ctx context.Context, clientID string, limit int) ([]*domain.ActivityEntry, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id required", domain.ErrInvalidInput)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.activity.ListByClient(ctx, clientID, limit)
}
