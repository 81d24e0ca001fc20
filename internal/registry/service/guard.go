package service

import (
	"context"
	"errors"

	"github.com/harborauth/clientreg/internal/registry/domain"
	"github.com/harborauth/clientreg/internal/registry/store"
)

// ErrForbidden signals an authorization denial. It deliberately reveals
// nothing about whether the target user exists.
var ErrForbidden = errors.New(`Only users with the "admin" privilege can inspect OAuth2 clients that are not your own`)

// AccessGuard decides whether the acting principal may read or create
// registrations for a target user. The rule is ownership OR the admin
// privilege, applied identically to reads and creates so the security
// decision lives in exactly one place.
type AccessGuard struct {
	Store store.Store
}

// Authorize allows the action when the principal is the target user, or
// when the principal holds the admin privilege. Collaborator failures are
// propagated as-is.
func (g *AccessGuard) Authorize(ctx context.Context, principalID, targetUserID string) error {
	if principalID != "" && principalID == targetUserID {
		return nil
	}

	ok, err := g.Store.Privileges().HasPrivilege(ctx, principalID, domain.PrivilegeAdmin)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	return nil
}
