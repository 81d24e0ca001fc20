package service

import (
	"context"
	"errors"
	"strings"

	"github.com/harborauth/clientreg/internal/registry/domain"
	"github.com/harborauth/clientreg/internal/registry/store"
	"github.com/harborauth/clientreg/pkg/cryptox"
	"github.com/harborauth/clientreg/pkg/slogx"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrClientIDTaken = errors.New("client id is already registered")
)

// RegistrationService issues and lists OAuth2 client registrations on
// behalf of users. It enforces the access rule and all input invariants
// before delegating persistence to the store.
type RegistrationService struct {
	Store   store.Store
	Guard   *AccessGuard
	Secrets cryptox.SecretGenerator
}

// CreateClientInput is the caller-facing request shape for registration.
// AllowedGrantTypes and RedirectURIs are space-delimited strings.
type CreateClientInput struct {
	ClientID          string
	AllowedGrantTypes string
	RedirectURIs      string
}

// ListClients returns all registrations owned by the target user, in
// storage order. The target user must exist (checked before authorization,
// so a denied caller learns nothing extra) and the principal must be the
// owner or an admin.
func (s *RegistrationService) ListClients(
	ctx context.Context,
	principalID, targetUserID string,
) ([]domain.Client, error) {
	user, err := s.resolveUser(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	if err := s.Guard.Authorize(ctx, principalID, user.ID); err != nil {
		return nil, err
	}

	return s.Store.Clients().ListClientsByUser(ctx, user.ID)
}

// CreateClient validates the request, mints credentials and persists the
// registration. The returned plaintext secret exists only in this return
// path: it is never stored, never logged, and cannot be retrieved again.
func (s *RegistrationService) CreateClient(
	ctx context.Context,
	principalID, targetUserID string,
	input CreateClientInput,
) (domain.Client, string, error) {
	l := slogx.FromContext(ctx)

	user, err := s.resolveUser(ctx, targetUserID)
	if err != nil {
		return domain.Client{}, "", err
	}

	if err := s.Guard.Authorize(ctx, principalID, user.ID); err != nil {
		return domain.Client{}, "", err
	}

	redirectURIs := strings.Fields(input.RedirectURIs)

	clientID := input.ClientID
	switch {
	case clientID == "":
		clientID, err = s.Secrets.Generate(cryptox.ClientIDSize)
		if err != nil {
			l.Error("failed to generate client id", "error", err)
			return domain.Client{}, "", err
		}
	case len(clientID) < domain.MinClientIDLength:
		return domain.Client{}, "", domain.NewValidationError("clientId must be at least 6 characters or left empty")
	}

	grantTypes, err := domain.ParseGrantTypes(input.AllowedGrantTypes)
	if err != nil {
		return domain.Client{}, "", err
	}

	plaintextSecret, err := s.Secrets.Generate(cryptox.ClientSecretSize)
	if err != nil {
		l.Error("failed to generate client secret", "error", err)
		return domain.Client{}, "", err
	}

	secretHash, err := cryptox.HashSecret(plaintextSecret)
	if err != nil {
		l.Error("failed to hash client secret", "error", err)
		return domain.Client{}, "", err
	}

	newClient := domain.Client{
		ClientID:          clientID,
		UserID:            user.ID,
		AllowedGrantTypes: grantTypes,
		SecretHash:        secretHash,
		RedirectURIs:      redirectURIs,
	}

	// The client row and its redirect URIs must land atomically: a client
	// is never visible without its redirect URIs, and vice versa.
	var created domain.Client
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		created, err = tx.Clients().CreateClient(ctx, newClient)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Uniqueness is enforced by storage only; there is no pre-check
			// and no retry with a fresh generated id.
			return domain.Client{}, "", ErrClientIDTaken
		}
		l.Error("failed to create client", "error", err, "user_id", user.ID)
		return domain.Client{}, "", err
	}

	l.Info("client registered", "client_id", created.ClientID, "user_id", user.ID)
	return created, plaintextSecret, nil
}

func (s *RegistrationService) resolveUser(ctx context.Context, targetUserID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
