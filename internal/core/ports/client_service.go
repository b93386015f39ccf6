package ports

import (
	"context"

	"github.com/camaleon/crm-api/internal/core/domain"
)

// CreateClientInput carries the data needed to register a client company.
type CreateClientInput struct {
	Name      string
	LegalName string
	Segment   string
	OwnerName string
	Email     string
	Phone     string
}

// ClientService defines client company use cases.
type ClientService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	ListActivity(ctx context.Context, clientID string, limit int) ([]*domain.ActivityEntry, error)
}
