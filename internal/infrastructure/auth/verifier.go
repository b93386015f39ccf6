// Package auth adapts the account store into the credential verifier used to
// gate sensitive actions behind a password re-check.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/camaleon/crm-api/internal/core/domain"
	"github.com/camaleon/crm-api/internal/core/ports"
)

// Verifier implements ports.CredentialVerifier against the auth repository.
type Verifier struct {
	repo ports.AuthRepository
}

func NewVerifier(repo ports.AuthRepository) *Verifier {
	return &Verifier{repo: repo}
}

// Verify re-checks an operator's own email+password. An unknown account or a
// mismatched password both map to ErrWrongCredential; store failures map to
// ErrVerifierUnavailable so callers can tell "re-prompt" from "try later".
func (v *Verifier) Verify(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return domain.ErrWrongCredential
	}

	user, err := v.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrWrongCredential
		}
		return fmt.Errorf("%w: %v", domain.ErrVerifierUnavailable, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrWrongCredential
	}
	return nil
}
