// Package common defines shared constants and sentinel errors used across
// the layers of estatehub. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrCannotUpdate      = errors.New("cannot update")
	ErrCannotDelete      = errors.New("cannot delete")
	ErrConnectionFailure = errors.New("connection failure")
	ErrInvalidArgument   = errors.New("invalid argument")

	// Token lifecycle errors.
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidTokenType = errors.New("invalid token type")

	// Auth errors. ErrInvalidCredentials deliberately covers both "no such
	// user" and "wrong password" so login responses do not reveal which
	// emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Generic service-level errors.
	ErrInternal = errors.New("internal error")
)
