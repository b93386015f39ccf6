// Package invite implements the invitation issuer: it provisions a portal
// identity for a contact's email and triggers the transactional signup email
// through the configured mail provider.
package invite

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/camaleon/crm-api/internal/core/domain"
	"github.com/camaleon/crm-api/internal/core/ports"
)

const mailTimeout = 10 * time.Second

// Config carries the issuer settings.
type Config struct {
	// PortalBaseURL and SignupPath compose the redirect target embedded in
	// the invitation email, parameterized by the invited address.
	PortalBaseURL string
	SignupPath    string

	// Mail provider endpoint and credentials.
	MailAPIURL string
	MailAPIKey string
	MailFrom   string
}

// Issuer implements ports.InvitationIssuer.
type Issuer struct {
	users ports.AuthRepository
	http  *resty.Client
	cfg   Config
	log   zerolog.Logger
}

// NewIssuer builds an Issuer sending mail through the provider in cfg.
func NewIssuer(users ports.AuthRepository, cfg Config, log zerolog.Logger) *Issuer {
	client := resty.New().
		SetTimeout(mailTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Issuer{users: users, http: client, cfg: cfg, log: log}
}

// Invite provisions a portal account for email and sends the signup link.
// The account is created disabled behind a random placeholder password; the
// invited contact sets a real one through the signup flow.
func (i *Issuer) Invite(ctx context.Context, email string) (string, error) {
	// Random placeholder credential; never shared, replaced during signup.
	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("invite: %w", err)
	}

	now := time.Now().UTC()
	created, err := i.users.Create(ctx, &domain.User{
		Username:     email,
		Email:        email,
		PasswordHash: string(placeholder),
		Role:         domain.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if err == domain.ErrUserExists {
			return "", fmt.Errorf("invite: portal account already exists for %s: %w", email, err)
		}
		return "", fmt.Errorf("invite: create portal account: %w", err)
	}
	userID := created.ID

	if err := i.sendSignupEmail(ctx, email); err != nil {
		// The identity exists but the email did not go out; surface the
		// failure so the operator can retry the invite.
		return "", fmt.Errorf("invite: send email: %w", err)
	}

	i.log.Info().Str("user_id", userID).Str("email", email).Msg("portal invitation issued")
	return userID, nil
}

// SignupURL returns the redirect target for an invited address.
func (i *Issuer) SignupURL(email string) string {
	return fmt.Sprintf("%s%s?email=%s", i.cfg.PortalBaseURL, i.cfg.SignupPath, url.QueryEscape(email))
}

type mailRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Template string `json:"template"`
	Link     string `json:"link"`
}

func (i *Issuer) sendSignupEmail(ctx context.Context, email string) error {
	resp, err := i.http.R().
		SetContext(ctx).
		SetAuthToken(i.cfg.MailAPIKey).
		SetBody(mailRequest{
			From:     i.cfg.MailFrom,
			To:       email,
			Subject:  "You have been invited to the client portal",
			Template: "portal-invite",
			Link:     i.SignupURL(email),
		}).
		Post(i.cfg.MailAPIURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mail provider returned %s", resp.Status())
	}
	return nil
}
