package domain

import "time"

// User is an identity owned by the external identity subsystem. The
// registry only ever reads it by id; it exists here so client ownership can
// be enforced.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrivilegeAdmin allows a principal to act on registrations that are not
// their own.
const PrivilegeAdmin = "admin"
