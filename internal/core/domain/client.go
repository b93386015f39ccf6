package domain

import "time"

// Client is an agency client company. Contacts belong to exactly one client.
type Client struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	LegalName string    `json:"legal_name,omitempty" bson:"legal_name,omitempty"`
	Segment   string    `json:"segment,omitempty" bson:"segment,omitempty"`
	OwnerName string    `json:"owner_name,omitempty" bson:"owner_name,omitempty"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ClientPatch carries a partial client update. Nil fields are left untouched.
type ClientPatch struct {
	Name      *string
	LegalName *string
	Segment   *string
	OwnerName *string
	Email     *string
	Phone     *string
	Active    *bool
}
