package domain

import "time"

// Activity actions recorded on the client trail.
const (
	ActivityContactCreated = "contact_created"
	ActivityContactUpdated = "contact_updated"
	ActivityContactDeleted = "contact_deleted"
	ActivityContactInvited = "contact_invited"
)

// ActivityEntry is one line of the per-client audit trail.
type ActivityEntry struct {
	ClientID  string    `json:"client_id"`
	ContactID string    `json:"contact_id,omitempty"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"at"`
}
