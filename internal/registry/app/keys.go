package app

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/harborauth/clientreg/pkg/jwtx"
)

// LoadOrGenerateKey reads the Ed25519 signing key from path, generating and
// persisting a fresh one on first start. The key file is PKCS8 PEM with
// owner-only permissions; the same file is shared with cmd/tokengen so
// tokens minted there verify here.
func LoadOrGenerateKey(path string, logger *slog.Logger) (ed25519.PrivateKey, error) {
	pemKey, err := os.ReadFile(path)
	if err == nil {
		key, parseErr := jwtx.ParsePrivateKeyPEM(pemKey)
		if parseErr != nil {
			return nil, fmt.Errorf("read key file %s: %w", path, parseErr)
		}
		return key, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read key file %s: %w", path, err)
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}

	pemKey, err = jwtx.MarshalPrivateKeyPEM(key)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, pemKey, 0o600); err != nil {
		return nil, fmt.Errorf("write key file %s: %w", path, err)
	}

	logger.Warn("no key file found, generated a new Ed25519 key", "path", path)
	return key, nil
}

// InitVerifier builds the token verifier from the configured key file.
func InitVerifier(cfg Config, logger *slog.Logger) (*jwtx.Verifier, error) {
	key, err := LoadOrGenerateKey(cfg.KeyFile, logger)
	if err != nil {
		return nil, err
	}

	verifier := jwtx.NewVerifier(cfg.Issuer)
	verifier.AddKey(cfg.KeyID, key.Public().(ed25519.PublicKey))

	logger.Info("verification key loaded", "kid", cfg.KeyID, "issuer", cfg.Issuer)
	return verifier, nil
}
