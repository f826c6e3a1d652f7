package service

import "errors"

var (
	// ErrUserNotFound is returned for lookups of unknown user ids.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for every failed login, whether
	// the username is unknown or the password is wrong. Callers must not
	// distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrDefaultRoleMissing means the role catalog lost its ROLE_USER
	// row; the installation is broken and writes must not proceed.
	ErrDefaultRoleMissing = errors.New("default role missing from catalog")
)
