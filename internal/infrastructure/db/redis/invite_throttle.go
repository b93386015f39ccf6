package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleTTL = time.Hour

// InviteThrottle suppresses rapid duplicate portal invites, backed by Redis.
// Key format: invite:<contact_id>
type InviteThrottle struct {
	client *redis.Client
}

// NewInviteThrottle creates an InviteThrottle wrapping the given Redis client.
func NewInviteThrottle(client *redis.Client) *InviteThrottle {
	return &InviteThrottle{client: client}
}

// RecentlyInvited reports whether an invite was already sent for this contact
// within the throttle window.
func (t *InviteThrottle) RecentlyInvited(ctx context.Context, contactID string) (bool, error) {
	n, err := t.client.Exists(ctx, t.key(contactID)).Result()
	if err != nil {
		return false, fmt.Errorf("invite throttle check: %w", err)
	}
	return n > 0, nil
}

// MarkInvited records that an invite went out (expires after throttleTTL).
func (t *InviteThrottle) MarkInvited(ctx context.Context, contactID string) error {
	return t.client.Set(ctx, t.key(contactID), "1", throttleTTL).Err()
}

func (t *InviteThrottle) key(contactID string) string {
	return "invite:" + contactID
}
