// Package models contains the persisted entities of estatehub. Every entity
// carries creation/update timestamps and a nullable DeletedAt marker; a row
// is active iff DeletedAt is nil.
package models

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Active reports whether the user has not been soft-deleted.
func (u *User) Active() bool { return u.DeletedAt == nil }
