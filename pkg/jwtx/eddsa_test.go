package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, kid string) *Signer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	pemKey, err := MarshalPrivateKeyPEM(priv)
	require.NoError(t, err)

	signer, err := NewSigner(kid, pemKey)
	require.NoError(t, err)
	return signer
}

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-1")

	verifier := NewVerifier("clientreg-test")
	verifier.AddKey(signer.KID(), signer.Public())
	require.True(t, verifier.IsReady())

	claims := NewAccessClaims("user-123", "alice", "clientreg-test", time.Minute, time.Now().UTC())

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.NoError(t, got.ValidateExpiry())
}

func TestVerifyRejectsUnknownKID(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-unknown")

	verifier := NewVerifier("")
	verifier.AddKey("key-other", newTestSigner(t, "key-other").Public())

	token, err := signer.Sign(NewAccessClaims("u", "", "", time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-1")
	imposter := newTestSigner(t, "key-1")

	verifier := NewVerifier("")
	verifier.AddKey("key-1", imposter.Public())

	token, err := signer.Sign(NewAccessClaims("u", "", "", time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsNonEdDSAAlgorithm(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-1")

	verifier := NewVerifier("")
	verifier.AddKey(signer.KID(), signer.Public())

	// An HS256 token with a known kid must fail on the algorithm, not the
	// signature.
	hmacToken := jwt.NewWithClaims(jwt.SigningMethodHS256,
		NewAccessClaims("u", "", "", time.Minute, time.Now().UTC()))
	hmacToken.Header["kid"] = signer.KID()
	token, err := hmacToken.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrAlgMismatch)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t, "key-1")

	verifier := NewVerifier("expected-issuer")
	verifier.AddKey(signer.KID(), signer.Public())

	token, err := signer.Sign(NewAccessClaims("u", "", "another-issuer", time.Minute, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier("")
	verifier.AddKey("k", newTestSigner(t, "k").Public())

	_, err := verifier.Verify("definitely.not.a-jwt")
	require.Error(t, err)
}

func TestValidateExpiry(t *testing.T) {
	t.Parallel()

	expired := NewAccessClaims("u", "", "", -time.Minute, time.Now().UTC().Add(-time.Hour))
	require.ErrorIs(t, expired.ValidateExpiry(), ErrExpired)

	future := NewAccessClaims("u", "", "", time.Hour, time.Now().UTC().Add(time.Hour))
	require.ErrorIs(t, future.ValidateExpiry(), ErrNotYetValid)
}
