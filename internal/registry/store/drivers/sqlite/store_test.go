package sqlite

import (
	"context"
	"testing"

	"github.com/harborauth/clientreg/internal/registry/domain"
	"github.com/harborauth/clientreg/internal/registry/store"
	"github.com/harborauth/clientreg/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *Store, username string) domain.User {
	t.Helper()

	u := domain.User{ID: idx.New().String(), Username: username}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("round trips a user", func(t *testing.T) {
		u := seedUser(t, s, "alice")

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, "alice", got.Username)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username maps to ErrAlreadyExists", func(t *testing.T) {
		seedUser(t, s, "bob")
		err := s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "bob"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestPrivilegesRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "carol")

	has, err := s.Privileges().HasPrivilege(ctx, u.ID, domain.PrivilegeAdmin)
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, s.Privileges().GrantPrivilege(ctx, u.ID, domain.PrivilegeAdmin))
	// Granting twice is a no-op.
	require.NoError(t, s.Privileges().GrantPrivilege(ctx, u.ID, domain.PrivilegeAdmin))

	has, err = s.Privileges().HasPrivilege(ctx, u.ID, domain.PrivilegeAdmin)
	require.NoError(t, err)
	require.True(t, has)
}

func TestClientsRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	owner := seedUser(t, s, "dave")

	newClient := func(clientID string, uris ...string) domain.Client {
		return domain.Client{
			ClientID:          clientID,
			UserID:            owner.ID,
			AllowedGrantTypes: []domain.GrantType{domain.GrantTypeClientCredentials, domain.GrantTypeRefreshToken},
			SecretHash:        "$2a$12$fakehashfakehashfakehashfakehashfakehashfakehashfakeha",
			RedirectURIs:      uris,
		}
	}

	t.Run("create assigns a storage id and persists redirect uris", func(t *testing.T) {
		created, err := s.Clients().CreateClient(ctx, newClient("app-one", "https://a.example/cb", "https://b.example/cb"))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		_, err = idx.Parse(created.ID)
		require.NoError(t, err)

		listed, err := s.Clients().ListClientsByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		require.Equal(t, "app-one", listed[0].ClientID)
		require.Equal(t, []string{"https://a.example/cb", "https://b.example/cb"}, listed[0].RedirectURIs)
		require.Equal(t, []domain.GrantType{domain.GrantTypeClientCredentials, domain.GrantTypeRefreshToken}, listed[0].AllowedGrantTypes)
	})

	t.Run("client_id collisions map to ErrAlreadyExists", func(t *testing.T) {
		_, err := s.Clients().CreateClient(ctx, newClient("app-one"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("list preserves creation order", func(t *testing.T) {
		_, err := s.Clients().CreateClient(ctx, newClient("app-two"))
		require.NoError(t, err)
		_, err = s.Clients().CreateClient(ctx, newClient("app-three"))
		require.NoError(t, err)

		listed, err := s.Clients().ListClientsByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		require.Equal(t, "app-one", listed[0].ClientID)
		require.Equal(t, "app-two", listed[1].ClientID)
		require.Equal(t, "app-three", listed[2].ClientID)
	})

	t.Run("list for a user without clients is empty", func(t *testing.T) {
		other := seedUser(t, s, "erin")
		listed, err := s.Clients().ListClientsByUser(ctx, other.ID)
		require.NoError(t, err)
		require.Empty(t, listed)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	owner := seedUser(t, s, "frank")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Clients().CreateClient(ctx, domain.Client{
			ClientID:          "rollback-me",
			UserID:            owner.ID,
			AllowedGrantTypes: []domain.GrantType{domain.GrantTypePassword},
			SecretHash:        "hash",
		})
		require.NoError(t, err)
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	listed, err := s.Clients().ListClientsByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestTxRejectsNesting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tx, err := s.Tx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Tx(ctx)
	require.Error(t, err)
}
