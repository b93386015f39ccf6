package domain

import "time"

// Contact is a person attached to a client company. LinkedUserID references
// the portal login provisioned for the contact; it is set exactly once, by
// the invitation workflow, never by a direct edit.
type Contact struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	ClientID     string    `json:"client_id" bson:"client_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Position     string    `json:"position,omitempty" bson:"position,omitempty"`
	Notes        string    `json:"notes,omitempty" bson:"notes,omitempty"`
	LinkedUserID string    `json:"linked_user_id,omitempty" bson:"linked_user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// HasPortalAccess reports whether a portal login was already provisioned for
// this contact.
func (c *Contact) HasPortalAccess() bool {
	return c.LinkedUserID != ""
}

// ContactPatch carries a partial contact update. Nil fields are left
// untouched by the store.
type ContactPatch struct {
	Name         *string
	Email        *string
	Phone        *string
	Position     *string
	Notes        *string
	LinkedUserID *string
}

// AccessRoleEntry grants a portal user a role within one client company.
// At most one entry exists per UserID; writes are upserts keyed on it.
type AccessRoleEntry struct {
	UserID    string    `json:"user_id" bson:"user_id"`
	Email     string    `json:"email" bson:"email"`
	Role      string    `json:"role" bson:"role"`
	ClientID  string    `json:"client_id" bson:"client_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// PortalContactRole is the fixed role granted to contact-originated invites.
const PortalContactRole = "admin"
