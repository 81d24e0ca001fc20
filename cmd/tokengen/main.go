// Command tokengen mints an access token for a user id using the
// registry's Ed25519 key file. Intended for local development and
// operational tooling, not for production token issuance.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/harborauth/clientreg/pkg/jwtx"
)

func main() {
	keyFile := flag.String("key", "registry.key", "Path to the Ed25519 key file (PKCS8 PEM)")
	kid := flag.String("kid", "registry-key", "Key id placed in the token header")
	issuer := flag.String("issuer", "clientreg", "Issuer claim for the token")
	subject := flag.String("subject", "", "Subject of the token (the acting user id)")
	username := flag.String("username", "", "Username claim (informational)")
	expiry := flag.Duration("expiry", jwtx.DefaultAccessTokenTTL, "Token expiry duration (e.g. 15m, 1h)")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "Error: -subject is required")
		flag.Usage()
		os.Exit(1)
	}

	pemKey, err := os.ReadFile(*keyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read key file: %v\n", err)
		os.Exit(1)
	}

	signer, err := jwtx.NewSigner(*kid, pemKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load signing key: %v\n", err)
		os.Exit(1)
	}

	claims := jwtx.NewAccessClaims(*subject, *username, *issuer, *expiry, time.Now().UTC())
	token, err := signer.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
