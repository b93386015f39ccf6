// Package urlmask obfuscates opaque identifiers for use in shareable URLs.
//
// Masking is a reversible base64url transform, not access control: anything
// recovered by Unmask is untrusted input and must still pass authorization
// downstream.
package urlmask

import (
	"encoding/base64"

	"github.com/rs/zerolog"
)

// Masker encodes and decodes URL-safe identifier tokens.
type Masker struct {
	log zerolog.Logger
}

// New returns a Masker that logs decode failures through log.
func New(log zerolog.Logger) *Masker {
	return &Masker{log: log}
}

// Mask returns a URL-safe token for value. Empty input stays empty.
func (m *Masker) Mask(value string) string {
	if value == "" {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(value))
}

// Unmask reverses Mask. Malformed tokens never fail the caller: the input is
// returned unchanged and a warning is logged. A broken mask must only degrade
// the privacy benefit, never block navigation.
func (m *Masker) Unmask(token string) string {
	if token == "" {
		return ""
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		m.log.Warn().Err(err).Str("token", token).Msg("failed to unmask identifier, using value as-is")
		return token
	}
	return string(raw)
}
