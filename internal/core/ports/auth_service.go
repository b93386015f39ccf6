package ports

import (
	"context"

	"github.com/camaleon/crm-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email, role, clientID string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
