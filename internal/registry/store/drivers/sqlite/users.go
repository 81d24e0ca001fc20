package sqlite

import (
	"context"
	"time"

	"github.com/harborauth/clientreg/internal/registry/domain"
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, created_at, updated_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.CreatedAt, u.UpdatedAt,
	)
	return mapConflict(err)
}
