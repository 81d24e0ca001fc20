package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs Claims into compact JWTs using Ed25519.
type Signer struct {
	kid string
	key ed25519.PrivateKey
}

// NewSigner loads an Ed25519 private key from PEM bytes.
// Ed25519 keys must be in PKCS8 format.
func NewSigner(kid string, pemKey []byte) (*Signer, error) {
	key, err := ParsePrivateKeyPEM(pemKey)
	if err != nil {
		return nil, err
	}
	return &Signer{kid: kid, key: key}, nil
}

func (s *Signer) KID() string { return s.kid }

// Public returns the verification key matching the signing key.
func (s *Signer) Public() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}

// Sign takes claims and turns them into a signed JWT string.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// Verifier validates EdDSA JWTs against a set of Ed25519 public keys keyed
// by kid. It is safe for concurrent use.
type Verifier struct {
	mu     sync.RWMutex
	keys   map[string]ed25519.PublicKey
	issuer string
}

// NewVerifier creates an empty Verifier enforcing the given issuer.
// An empty issuer means "don't care".
func NewVerifier(issuer string) *Verifier {
	return &Verifier{
		keys:   make(map[string]ed25519.PublicKey),
		issuer: issuer,
	}
}

// AddKey registers a verification key under its kid.
func (v *Verifier) AddKey(kid string, pub ed25519.PublicKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.keys[kid] = pub
}

// IsReady returns true if at least one verification key is loaded.
func (v *Verifier) IsReady() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.keys) > 0
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser()

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		// Only EdDSA tokens are accepted. Checked here rather than via
		// WithValidMethods so the failure stays distinguishable from a bad
		// signature.
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("%w: %v", ErrAlgMismatch, t.Header["alg"])
		}

		// Need the kid to know which key to use.
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrUnknownKID
		}

		v.mu.RLock()
		pub, ok := v.keys[kid]
		v.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}

		return pub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlgMismatch):
			return Claims{}, ErrAlgMismatch
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		default:
			return Claims{}, err
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// ParsePrivateKeyPEM decodes a PKCS8 PEM block into an Ed25519 private key.
func ParsePrivateKeyPEM(pemKey []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM for Ed25519 key")
	}

	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q (Ed25519 requires PKCS8)", block.Type)
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}

	key, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: not Ed25519 private key")
	}

	return key, nil
}

// MarshalPrivateKeyPEM encodes an Ed25519 private key as a PKCS8 PEM block.
func MarshalPrivateKeyPEM(key ed25519.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("jwtx: marshal PKCS8: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}
