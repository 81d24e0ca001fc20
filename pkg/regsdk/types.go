package regsdk

// ErrorResponse is the error body returned by every registry endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "forbidden",
	// "invalid_client_metadata")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// CreateClientRequest represents the request to register a new OAuth2
// client for a user.
type CreateClientRequest struct {
	// ClientID is an optional caller-chosen public identifier. Leave empty
	// to have one generated; supplied values must be at least 6 characters.
	ClientID string `json:"client_id,omitempty"`

	// AllowedGrantTypes is the space-delimited list of grant types the
	// client may use (e.g. "client_credentials refresh_token").
	AllowedGrantTypes string `json:"allowed_grant_types"`

	// RedirectURIs is the space-delimited list of redirect URIs registered
	// for the client. May be empty.
	RedirectURIs string `json:"redirect_uris,omitempty"`
}

// ClientInfo represents an OAuth2 client registration. The secret hash is
// never included.
type ClientInfo struct {
	// ID is the storage-assigned identifier for the registration
	ID string `json:"id"`

	// ClientID is the public-facing client identifier
	ClientID string `json:"client_id"`

	// UserID is the owning user's id
	UserID string `json:"user_id"`

	// AllowedGrantTypes are the grant types the client may use
	AllowedGrantTypes []string `json:"allowed_grant_types"`

	// RedirectURIs are the redirect URIs registered for the client
	RedirectURIs []string `json:"redirect_uris"`

	// CreatedAt is the creation timestamp (RFC3339)
	CreatedAt string `json:"created_at"`
}

// ListClientsResponse contains a user's OAuth2 client registrations.
type ListClientsResponse struct {
	Clients []ClientInfo `json:"clients"`
}

// CreateClientResponse contains the created registration and the one-time
// plaintext secret. The secret is only ever returned here; store it now.
type CreateClientResponse struct {
	Client ClientInfo `json:"client"`

	// ClientSecret is the plaintext secret (only returned once at creation)
	ClientSecret string `json:"client_secret"`
}

// HealthResponse represents the response structure for health check
// endpoints. Used by both /livez and /readyz (readyz includes Checks).
type HealthResponse struct {
	// Status indicates the overall health status (e.g. "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g. "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Verifier indicates whether token verification keys are loaded
	Verifier string `json:"verifier"`
}
