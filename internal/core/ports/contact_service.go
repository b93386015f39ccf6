package ports

import (
	"context"

	"github.com/camaleon/crm-api/internal/core/domain"
)

// SaveContactInput carries everything a single contact-save action needs.
// An empty ContactID means create; otherwise the contact is updated.
// When InviteRequested is set, OperatorEmail/Password re-authenticate the
// acting operator (never the contact) before the invitation is issued.
type SaveContactInput struct {
	ContactID string
	ClientID  string

	Name     string
	Email    string
	Phone    string
	Position string
	Notes    string

	InviteRequested bool
	OperatorEmail   string
	Password        string
}

// SaveContactResult reports which steps of the save actually completed so the
// caller can render differentiated feedback instead of a single pass/fail.
type SaveContactResult struct {
	Contact *domain.Contact

	Persisted   bool
	Authorized  bool
	InviteSent  bool
	Linked      bool
	Provisioned bool

	// AlreadyLinked is true when an invite was requested for a contact that
	// already has portal access; the whole invite sub-flow was skipped.
	AlreadyLinked bool

	// UserID is the portal identity issued by the invitation, when any.
	UserID string

	// InviteErr is the failure that ended the invite sub-flow (wrong
	// credential, verifier unavailable, issuer failure). The contact itself
	// was still saved.
	InviteErr error

	// Warnings carries non-fatal tail-step failures (linking, provisioning).
	Warnings []string
}

// InviteContactInput drives an invite for an already-persisted contact, as
// submitted to the remote invitation endpoint.
type InviteContactInput struct {
	ContactID     string
	ClientID      string
	Email         string
	OperatorEmail string
	Password      string
}

// ContactService defines the contact use cases, including the invitation
// workflow.
type ContactService interface {
	// SaveContact persists the contact and, when requested, drives the
	// invitation chain. It returns a non-nil error only for validation or
	// persistence failures; invite sub-flow failures are reported in the
	// result.
	SaveContact(ctx context.Context, input SaveContactInput) (*SaveContactResult, error)
	// InviteContact runs the invitation chain for an existing contact
	// without touching its form fields. Unlike SaveContact, sub-flow
	// failures are returned as errors: the endpoint has nothing else to
	// report.
	InviteContact(ctx context.Context, input InviteContactInput) (*SaveContactResult, error)
	DeleteContact(ctx context.Context, id string) error
	ListContacts(ctx context.Context, clientID string) ([]*domain.Contact, error)
}
