package ports

import (
	"context"

	"github.com/camaleon/crm-api/internal/core/domain"
)

// ClientRepository defines persistence operations for client companies.
type ClientRepository interface {
	Insert(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
}

// ActivityRepository persists client activity-trail entries.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityEntry) error
	ListByClient(ctx context.Context, clientID string, limit int) ([]*domain.ActivityEntry, error)
}
