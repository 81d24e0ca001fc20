package store

import (
	"context"
	"errors"

	"github.com/harborauth/clientreg/internal/registry/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Clients() Clients
	Privileges() Privileges

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the caller via ULID).
	// Users normally arrive from the external identity subsystem; this
	// exists for provisioning and tests.
	CreateUser(ctx context.Context, u domain.User) error
}

type Clients interface {
	// ListClientsByUser returns all registrations owned by the user,
	// including redirect URIs, in creation order.
	ListClientsByUser(ctx context.Context, userID string) ([]domain.Client, error)

	// CreateClient assigns the storage id and persists the client together
	// with its redirect URIs. The two writes are only atomic when called
	// inside a Tx. Returns ErrAlreadyExists when client_id is taken.
	CreateClient(ctx context.Context, c domain.Client) (domain.Client, error)
}

type Privileges interface {
	// HasPrivilege reports whether the user holds the named privilege.
	HasPrivilege(ctx context.Context, userID, privilege string) (bool, error)

	// GrantPrivilege records a privilege for a user. Granting twice is a
	// no-op.
	GrantPrivilege(ctx context.Context, userID, privilege string) error
}
