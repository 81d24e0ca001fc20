package sqlite

import "context"

type privilegesRepo struct {
	db dbtx
}

func (r *privilegesRepo) HasPrivilege(ctx context.Context, userID, privilege string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM user_privileges WHERE user_id = ? AND privilege = ?`,
		userID, privilege,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *privilegesRepo) GrantPrivilege(ctx context.Context, userID, privilege string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_privileges (user_id, privilege) VALUES (?, ?)`,
		userID, privilege,
	)
	return err
}
