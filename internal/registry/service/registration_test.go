package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/harborauth/clientreg/internal/registry/domain"
	"github.com/harborauth/clientreg/pkg/cryptox"
	"github.com/harborauth/clientreg/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newRegistrationService(t *testing.T) (*RegistrationService, func(string) domain.User, func(string) domain.User) {
	t.Helper()

	st := newTestStore(t)
	svc := &RegistrationService{
		Store: st,
		Guard: &AccessGuard{Store: st},
	}

	users := func(name string) domain.User { return seedUser(t, st, name) }
	admins := func(name string) domain.User { return seedAdmin(t, st, name) }
	return svc, users, admins
}

func TestListClients(t *testing.T) {
	ctx := context.Background()
	svc, user, admin := newRegistrationService(t)

	owner := user("owner")
	stranger := user("stranger")
	boss := admin("boss")

	_, _, err := svc.CreateClient(ctx, owner.ID, owner.ID, CreateClientInput{
		ClientID:          "owners-app",
		AllowedGrantTypes: "authorization_code refresh_token",
		RedirectURIs:      "https://a.example/cb",
	})
	require.NoError(t, err)

	t.Run("owner lists their own clients", func(t *testing.T) {
		clients, err := svc.ListClients(ctx, owner.ID, owner.ID)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		require.Equal(t, "owners-app", clients[0].ClientID)
	})

	t.Run("admin lists another user's clients", func(t *testing.T) {
		clients, err := svc.ListClients(ctx, boss.ID, owner.ID)
		require.NoError(t, err)
		require.Len(t, clients, 1)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := svc.ListClients(ctx, stranger.ID, owner.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing user yields not found before authorization", func(t *testing.T) {
		_, err := svc.ListClients(ctx, stranger.ID, idx.New().String())
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()
	svc, user, admin := newRegistrationService(t)

	owner := user("owner")
	stranger := user("stranger")
	boss := admin("boss")

	t.Run("owner creates a client with generated id and secret", func(t *testing.T) {
		created, secret, err := svc.CreateClient(ctx, owner.ID, owner.ID, CreateClientInput{
			AllowedGrantTypes: "client_credentials refresh_token",
			RedirectURIs:      "https://a.example/cb",
		})
		require.NoError(t, err)

		// 10 random bytes encode to 14 base64url characters, 20 to 27.
		require.Len(t, created.ClientID, base64.RawURLEncoding.EncodedLen(cryptox.ClientIDSize))
		require.Len(t, secret, base64.RawURLEncoding.EncodedLen(cryptox.ClientSecretSize))

		require.Equal(t, owner.ID, created.UserID)
		require.Equal(t,
			[]domain.GrantType{domain.GrantTypeClientCredentials, domain.GrantTypeRefreshToken},
			created.AllowedGrantTypes)
		require.Equal(t, []string{"https://a.example/cb"}, created.RedirectURIs)

		// The stored value is a salted hash of the returned secret, never
		// the plaintext.
		require.NotEqual(t, secret, created.SecretHash)
		require.True(t, cryptox.VerifySecret(secret, created.SecretHash))
	})

	t.Run("admin creates a client for another user", func(t *testing.T) {
		created, _, err := svc.CreateClient(ctx, boss.ID, owner.ID, CreateClientInput{
			ClientID:          "managed-app",
			AllowedGrantTypes: "password",
		})
		require.NoError(t, err)
		require.Equal(t, "managed-app", created.ClientID)
		require.Equal(t, owner.ID, created.UserID)
		require.Empty(t, created.RedirectURIs)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, _, err := svc.CreateClient(ctx, stranger.ID, owner.ID, CreateClientInput{
			AllowedGrantTypes: "password",
		})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing target user", func(t *testing.T) {
		_, _, err := svc.CreateClient(ctx, boss.ID, idx.New().String(), CreateClientInput{
			AllowedGrantTypes: "password",
		})
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestCreateClientValidation(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newRegistrationService(t)
	owner := user("owner")

	requireValidationError := func(t *testing.T, err error, wantMsg string) {
		t.Helper()
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Error(), wantMsg)
	}

	t.Run("missing grant types", func(t *testing.T) {
		_, _, err := svc.CreateClient(ctx, owner.ID, owner.ID, CreateClientInput{})
		requireValidationError(t, err, "You must specify the allowedGrantTypes property")
	})

	t.Run("unsupported grant type lists all valid options", func(t *testing.T) {
		_, _, err := svc.CreateClient(ctx, owner.ID, owner.ID, CreateClientInput{
			AllowedGrantTypes: "password bogus",
		})
		requireValidationError(t, err,
			"password client_credentials refresh_token implicit authorization_code")
	})

	t.Run("supplied clientId shorter than 6 characters", func(t *testing.T) {
		_, _, err := svc.CreateClient(ctx, owner.ID, owner.ID, CreateClientInput{
			ClientID:          "abcde",
			AllowedGrantTypes: "password",
		})
		requireValidationError(t, err, "at least 6 characters")
	})

	t.Run("six character clientId is accepted as supplied", func(t *testing.T) {
		created, _, err := svc.CreateClient(ctx, owner.ID, owner.ID, CreateClientInput{
			ClientID:          "abcdef",
			AllowedGrantTypes: "password",
		})
		require.NoError(t, err)
		require.Equal(t, "abcdef", created.ClientID)
	})
}

func TestCreateClientConflict(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newRegistrationService(t)
	owner := user("owner")

	input := CreateClientInput{
		ClientID:          "duplicate-app",
		AllowedGrantTypes: "password",
	}

	_, _, err := svc.CreateClient(ctx, owner.ID, owner.ID, input)
	require.NoError(t, err)

	_, _, err = svc.CreateClient(ctx, owner.ID, owner.ID, input)
	require.ErrorIs(t, err, ErrClientIDTaken)
}

func TestCreateClientSecretsDiffer(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newRegistrationService(t)
	owner := user("owner")

	_, first, err := svc.CreateClient(ctx, owner.ID, owner.ID, CreateClientInput{
		AllowedGrantTypes: "password",
	})
	require.NoError(t, err)

	_, second, err := svc.CreateClient(ctx, owner.ID, owner.ID, CreateClientInput{
		AllowedGrantTypes: "password",
	})
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
