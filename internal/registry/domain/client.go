package domain

import "time"

// Client is an OAuth2 client registration owned by a single user.
// SecretHash is the bcrypt hash of the client secret; the plaintext secret
// is returned exactly once at creation time and is never stored.
type Client struct {
	ID                string // storage-assigned, immutable
	ClientID          string // public-facing identifier, unique system-wide
	UserID            string // owning user
	AllowedGrantTypes []GrantType
	SecretHash        string
	RedirectURIs      []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MinClientIDLength is the minimum length of a caller-supplied client id.
// Shorter values are rejected; callers may instead omit the id to have one
// generated.
const MinClientIDLength = 6
