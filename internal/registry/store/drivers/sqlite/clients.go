package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/harborauth/clientreg/internal/registry/domain"
	"github.com/harborauth/clientreg/pkg/idx"
)

type clientsRepo struct {
	db dbtx
}

func (r *clientsRepo) ListClientsByUser(ctx context.Context, userID string) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_id, user_id, grant_types, secret_hash, created_at, updated_at
		 FROM clients WHERE user_id = ? ORDER BY created_at, id`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		var grantTypes string
		if err := rows.Scan(&c.ID, &c.ClientID, &c.UserID, &grantTypes, &c.SecretHash, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.AllowedGrantTypes = splitGrantTypes(grantTypes)
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range clients {
		uris, err := r.redirectURIs(ctx, clients[i].ID)
		if err != nil {
			return nil, err
		}
		clients[i].RedirectURIs = uris
	}

	return clients, nil
}

// CreateClient assigns the storage id and inserts the client row together
// with its redirect URI rows. Call inside a Tx so the two writes land
// atomically.
func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	if c.ID == "" {
		c.ID = idx.New().String()
	}

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, client_id, user_id, grant_types, secret_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ClientID, c.UserID,
		strings.Join(domain.GrantTypeStrings(c.AllowedGrantTypes), " "),
		c.SecretHash, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, mapConflict(err)
	}

	for position, uri := range c.RedirectURIs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO client_redirect_uris (client_id, position, uri) VALUES (?, ?, ?)`,
			c.ID, position, uri,
		)
		if err != nil {
			return domain.Client{}, err
		}
	}

	return c, nil
}

func (r *clientsRepo) redirectURIs(ctx context.Context, clientID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT uri FROM client_redirect_uris WHERE client_id = ? ORDER BY position`, clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uris []string
	for rows.Next() {
		var uri string
		if err := rows.Scan(&uri); err != nil {
			return nil, err
		}
		uris = append(uris, uri)
	}
	return uris, rows.Err()
}

func splitGrantTypes(s string) []domain.GrantType {
	fields := strings.Fields(s)
	gts := make([]domain.GrantType, len(fields))
	for i, f := range fields {
		gts[i] = domain.GrantType(f)
	}
	return gts
}
