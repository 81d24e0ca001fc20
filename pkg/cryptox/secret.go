package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// Secret size constants (in bytes before encoding).
const (
	// ClientIDSize is used for auto-generated OAuth2 client identifiers.
	ClientIDSize = 10
	// ClientSecretSize is used for OAuth2 client secrets.
	ClientSecretSize = 20
)

// SecretGenerator produces cryptographically random, URL-safe opaque strings.
// Rand may be overridden with a deterministic reader in tests; when nil the
// process-wide CSPRNG is used. The zero value is ready to use and safe for
// concurrent callers.
type SecretGenerator struct {
	Rand io.Reader
}

// Generate draws size random bytes and encodes them as unpadded base64url
// (standard base64 with + and / swapped for - and _, padding stripped).
// The output length is fixed for a given size and every character is drawn
// from the URL-safe alphabet. Size is a security parameter: it is the sole
// source of entropy in the issued credential.
func (g *SecretGenerator) Generate(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: secret size must be positive, got %d", size)
	}

	r := g.Rand
	if r == nil {
		r = rand.Reader
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("cryptox: failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
