package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/camaleon/crm-api/internal/api/metrics"
	"github.com/camaleon/crm-api/internal/core/domain"
	"github.com/camaleon/crm-api/internal/core/ports"
)

type contactService struct {
	contacts ports.ContactRepository
	roles    ports.RoleRepository
	verifier ports.CredentialVerifier
	issuer   ports.InvitationIssuer
	throttle ports.InviteThrottle
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewContactService returns a ContactService implementation wiring the
// invitation workflow to its collaborators. throttle and activity may be nil.
func NewContactService(
	contacts ports.ContactRepository,
	roles ports.RoleRepository,
	verifier ports.CredentialVerifier,
	issuer ports.InvitationIssuer,
	throttle ports.InviteThrottle,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.ContactService {
	return &contactService{
		contacts: contacts,
		roles:    roles,
		verifier: verifier,
		issuer:   issuer,
		throttle: throttle,
		activity: activity,
		log:      log,
	}
}

// SaveContact persists the contact and, when requested, runs the invitation
// chain: authorize operator → issue invite → link contact → provision role.
// The contact write is never rolled back by a later failure; linking and
// provisioning failures downgrade to warnings because the invitation email
// cannot be unsent.
func (s *contactService) SaveContact(ctx context.Context, in ports.SaveContactInput) (*ports.SaveContactResult, error) {
	// 1. Validate before touching any store.
	if err := validateSave(in); err != nil {
		return nil, err
	}

	// 2. Persist the contact (create or partial update). Failure here aborts
	// everything.
	contact, created, err := s.persist(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("save contact: %w", err)
	}
	result := &ports.SaveContactResult{Contact: contact, Persisted: true}

	action := domain.ActivityContactUpdated
	if created {
		action = domain.ActivityContactCreated
	}
	s.record(ports.ActivityInput{
		ClientID:  contact.ClientID,
		ContactID: contact.ID,
		Action:    action,
		Actor:     in.OperatorEmail,
	})
	metrics.ContactsSavedTotal.WithLabelValues(action).Inc()

	if !in.InviteRequested {
		return result, nil
	}

	// 3. Idempotent re-invite check: a contact that already has portal access
	// is never invited again. Informational, not an error.
	if contact.HasPortalAccess() {
		result.AlreadyLinked = true
		result.UserID = contact.LinkedUserID
		s.log.Info().Str("contact_id", contact.ID).Str("user_id", contact.LinkedUserID).Msg("contact already has portal access, invite skipped")
		return result, nil
	}

	result.InviteErr = s.runInvite(ctx, in, contact, result)
	return result, nil
}

// InviteContact runs the invitation chain for an already-persisted contact.
// The contact's stored email wins unless the request supplies one and the
// contact has none. Sub-flow failures come back as errors so the invitation
// endpoint can map them to statuses directly.
func (s *contactService) InviteContact(ctx context.Context, in ports.InviteContactInput) (*ports.SaveContactResult, error) {
	if in.ContactID == "" {
		return nil, fmt.Errorf("%w: contact id required", domain.ErrInvalidInput)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: credential required for invite", domain.ErrInvalidInput)
	}
	if in.OperatorEmail == "" {
		return nil, fmt.Errorf("%w: operator identity required for invite", domain.ErrInvalidInput)
	}

	contact, err := s.contacts.FindByID(ctx, in.ContactID)
	if err != nil {
		return nil, err
	}
	if contact.Email == "" && in.Email != "" {
		if contact, err = s.contacts.Update(ctx, contact.ID, domain.ContactPatch{Email: &in.Email}); err != nil {
			return nil, fmt.Errorf("invite contact: %w", err)
		}
	}
	if contact.Email == "" {
		return nil, fmt.Errorf("%w: email required for invite", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(contact.Email); err != nil {
		return nil, fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
	}
	if in.ClientID != "" && in.ClientID != contact.ClientID {
		return nil, fmt.Errorf("%w: contact does not belong to client", domain.ErrInvalidInput)
	}

	result := &ports.SaveContactResult{Contact: contact, Persisted: true}

	if contact.HasPortalAccess() {
		result.AlreadyLinked = true
		result.UserID = contact.LinkedUserID
		s.log.Info().Str("contact_id", contact.ID).Str("user_id", contact.LinkedUserID).Msg("contact already has portal access, invite skipped")
		return result, nil
	}

	saveIn := ports.SaveContactInput{
		OperatorEmail: in.OperatorEmail,
		Password:      in.Password,
	}
	if err := s.runInvite(ctx, saveIn, contact, result); err != nil {
		return result, err
	}
	return result, nil
}

// runInvite drives the invite sub-flow. The returned error, if any, belongs
// to the result: the overall save already succeeded.
func (s *contactService) runInvite(ctx context.Context, in ports.SaveContactInput, contact *domain.Contact, result *ports.SaveContactResult) error {
	start := time.Now()

	// Throttle check — advisory, proceed on store failure.
	if s.throttle != nil {
		recent, err := s.throttle.RecentlyInvited(ctx, contact.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("contact_id", contact.ID).Msg("invite throttle check failed, proceeding")
		} else if recent {
			s.log.Info().Str("contact_id", contact.ID).Msg("invite suppressed, recently sent")
			result.Warnings = append(result.Warnings, "an invite was already sent recently; not re-sent")
			return nil
		}
	}

	// Authorize: re-check the operator's own credential, not the contact's.
	if err := s.verifier.Verify(ctx, in.OperatorEmail, in.Password); err != nil {
		metrics.InviteErrorsTotal.WithLabelValues(inviteErrReason(err)).Inc()
		s.log.Warn().Err(err).Str("operator", in.OperatorEmail).Msg("operator re-authentication failed")
		return err
	}
	result.Authorized = true

	// Invite: provision the portal identity and send the signup email.
	userID, err := s.issuer.Invite(ctx, contact.Email)
	if err != nil {
		metrics.InviteErrorsTotal.WithLabelValues(inviteErrReason(err)).Inc()
		s.log.Error().Err(err).Str("contact_id", contact.ID).Msg("invitation issuer failed")
		return fmt.Errorf("%w: %v", domain.ErrInviteFailed, err)
	}
	result.InviteSent = true
	result.UserID = userID
	metrics.InvitesSentTotal.Inc()
	metrics.InviteDuration.Observe(time.Since(start).Seconds())

	if s.throttle != nil {
		if err := s.throttle.MarkInvited(ctx, contact.ID); err != nil {
			s.log.Warn().Err(err).Str("contact_id", contact.ID).Msg("failed to mark invite throttle key")
		}
	}
	s.record(ports.ActivityInput{
		ClientID:  contact.ClientID,
		ContactID: contact.ID,
		Action:    domain.ActivityContactInvited,
		Actor:     in.OperatorEmail,
		Detail:    contact.Email,
	})

	// Link: set linked_user_id exactly once. The invite is already out, so a
	// failure here is a warning, not a failure.
	linked, err := s.contacts.Update(ctx, contact.ID, domain.ContactPatch{LinkedUserID: &userID})
	if err != nil {
		s.log.Warn().Err(err).Str("contact_id", contact.ID).Str("user_id", userID).Msg("failed to link portal user to contact")
		result.Warnings = append(result.Warnings, "invite sent but contact linkage failed; it will be retried on the next save")
	} else {
		result.Linked = true
		result.Contact = linked
	}

	// Provision: upsert the access-role entry scoped to the contact's client.
	now := time.Now().UTC()
	entry := &domain.AccessRoleEntry{
		UserID:    userID,
		Email:     contact.Email,
		Role:      domain.PortalContactRole,
		ClientID:  contact.ClientID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.roles.Upsert(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to provision access role")
		result.Warnings = append(result.Warnings, "invite sent but permissions may need manual review")
	} else {
		result.Provisioned = true
	}

	s.log.Info().
		Str("contact_id", contact.ID).
		Str("user_id", userID).
		Str("client_id", contact.ClientID).
		Msg("contact invited")

	return nil
}

func (s *contactService) persist(ctx context.Context, in ports.SaveContactInput) (*domain.Contact, bool, error) {
	if in.ContactID == "" {
		now := time.Now().UTC()
		contact, err := s.contacts.Insert(ctx, &domain.Contact{
			ClientID:  in.ClientID,
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			Position:  in.Position,
			Notes:     in.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return contact, true, err
	}

	contact, err := s.contacts.Update(ctx, in.ContactID, domain.ContactPatch{
		Name:     &in.Name,
		Email:    &in.Email,
		Phone:    &in.Phone,
		Position: &in.Position,
		Notes:    &in.Notes,
	})
	return contact, false, err
}

func (s *contactService) DeleteContact(ctx context.Context, id string) error {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	s.record(ports.ActivityInput{
		ClientID:  contact.ClientID,
		ContactID: contact.ID,
		Action:    domain.ActivityContactDeleted,
	})
	return nil
}

func (s *contactService) ListContacts(ctx context.Context, clientID string) ([]*domain.Contact, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id required", domain.ErrInvalidInput)
	}
	return s.contacts.ListByClient(ctx, clientID)
}

func (s *contactService) record(in ports.ActivityInput) {
	if s.activity != nil {
		s.activity.Record(in)
	}
}

func validateSave(in ports.SaveContactInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if in.ContactID == "" && in.ClientID == "" {
		return fmt.Errorf("%w: client id required", domain.ErrInvalidInput)
	}
	if in.InviteRequested {
		if strings.TrimSpace(in.Email) == "" {
			return fmt.Errorf("%w: email required for invite", domain.ErrInvalidInput)
		}
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
		}
		if in.Password == "" {
			return fmt.Errorf("%w: credential required for invite", domain.ErrInvalidInput)
		}
		if in.OperatorEmail == "" {
			return fmt.Errorf("%w: operator identity required for invite", domain.ErrInvalidInput)
		}
	}
	return nil
}

func inviteErrReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, domain.ErrWrongCredential):
		return "wrong_credential"
	case errors.Is(err, domain.ErrVerifierUnavailable):
		return "verifier_unavailable"
	default:
		return "issuer_failed"
	}
}
