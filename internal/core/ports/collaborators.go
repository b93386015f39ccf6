package ports

import "context"

// CredentialVerifier re-authenticates the acting operator before a sensitive
// action. Implementations must return domain.ErrWrongCredential when the
// password does not match and domain.ErrVerifierUnavailable when the check
// itself could not run, so callers can re-prompt only on the former.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) error
}

// InvitationIssuer provisions a portal identity for an email address and
// triggers the transactional signup email. Returns the new portal user id.
type InvitationIssuer interface {
	Invite(ctx context.Context, email string) (userID string, err error)
}

// InviteThrottle suppresses rapid duplicate invites for the same contact.
// Errors are advisory: callers log and proceed.
type InviteThrottle interface {
	RecentlyInvited(ctx context.Context, contactID string) (bool, error)
	MarkInvited(ctx context.Context, contactID string) error
}

// ActivityRecorder accepts fire-and-forget activity-trail entries.
type ActivityRecorder interface {
	Record(entry ActivityInput)
}

// ActivityInput is the DTO handed to the activity dispatcher.
type ActivityInput struct {
	ClientID  string
	ContactID string
	Action    string
	Actor     string
	Detail    string
}
