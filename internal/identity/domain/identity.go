package domain

import "time"

type Role string

const (
	// RoleBuyer keeps the legacy wire value "user" so records written by
	// earlier storefront builds still deserialize.
	RoleBuyer  Role = "user"
	RoleArtist Role = "artist"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleArtist, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated principal. At least one of Email and Phone
// is always present; Role never changes after creation.
type Identity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i Identity) IsZero() bool {
	return i.ID == ""
}

// Challenge is an outstanding phone verification. At most one lives per
// phone number; issuing a new one replaces it. The code is never stored in
// the clear.
type Challenge struct {
	Phone     string    `json:"phone"`
	CodeHash  string    `json:"codeHash"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
