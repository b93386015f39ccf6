package ports

import (
	"context"

	"github.com/camaleon/crm-api/internal/core/domain"
)

// ContactRepository defines persistence operations for contacts.
// Update is partial: only non-nil patch fields change.
type ContactRepository interface {
	Insert(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Contact, error)
}

// RoleRepository persists portal access-role entries. Upsert is keyed on
// UserID so repeated calls leave exactly one entry per user; last write wins.
type RoleRepository interface {
	Upsert(ctx context.Context, entry *domain.AccessRoleEntry) error
}
