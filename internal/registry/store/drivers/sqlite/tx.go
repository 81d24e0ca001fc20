package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/harborauth/clientreg/internal/registry/store"
)

var errNestedTx = errors.New("sqlite: nested transactions are not supported")

// Tx wraps *sql.Tx so repositories run against the transaction instead of
// the root connection.
type Tx struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *Tx { return &Tx{tx: tx} }

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

func (t *Tx) Users() store.Users           { return &usersRepo{db: t.tx} }
func (t *Tx) Clients() store.Clients       { return &clientsRepo{db: t.tx} }
func (t *Tx) Privileges() store.Privileges { return &privilegesRepo{db: t.tx} }

// The remaining Store methods are intentionally unusable inside a
// transaction; this stops accidental transactions within transactions.

func (t *Tx) ApplyMigrations() error { return errors.New("sqlite: cannot migrate inside a transaction") }

func (t *Tx) Tx(ctx context.Context) (store.Tx, error) { return nil, errNestedTx }

func (t *Tx) WithTx(ctx context.Context, fn func(tx store.Tx) error) error { return errNestedTx }

func (t *Tx) Close() error { return nil }

func (t *Tx) Ping(ctx context.Context) error { return nil }
