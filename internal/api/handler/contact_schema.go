package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// saveContactRequest is shared by create and update. The invite block is only
// honored on the invitation path: invite=true requires email and password.
type saveContactRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	Notes    string `json:"notes"`

	Invite   bool   `json:"invite"`
	Password string `json:"password,omitempty"`
}

// --- Response types ---
// Response-only types owned by the transport layer, so the JSON contract is
// not coupled to internal service changes. Identifiers are masked in links.

type contactLinks struct {
	Self   string `json:"self"`
	Client string `json:"client"`
}

type contactResponse struct {
	ID           string       `json:"id"`
	ClientID     string       `json:"client_id"`
	Name         string       `json:"name"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Position     string       `json:"position,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	PortalAccess bool         `json:"portal_access"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Links        contactLinks `json:"_links"`
}

// saveContactResponse reports the save plus the invitation outcome so the UI
// can render differentiated feedback instead of a single pass/fail.
type saveContactResponse struct {
	Contact       contactResponse `json:"contact"`
	InviteSent    bool            `json:"invite_sent"`
	AlreadyLinked bool            `json:"already_linked,omitempty"`
	InviteError   string          `json:"invite_error,omitempty"`
	Warnings      []string        `json:"warnings,omitempty"`
}

type listContactsResponse struct {
	Data []contactResponse `json:"data"`
}
