// Package service contains the account-mutation engine: login, CRUD on
// user records and the role-resolution policy around them. Handlers map
// the sentinel errors below onto fixed HTTP statuses and never leak
// store or crypto details.
package service

import "errors"

var (
	// ErrInvalidCredentials is returned on any login failure. Unknown
	// email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotAvailable signals a uniqueness violation on create or
	// on the target email of a rename.
	ErrEmailNotAvailable = errors.New("email not available")

	// ErrEmailNotFound signals that the subject of an update does not
	// exist.
	ErrEmailNotFound = errors.New("email not found")

	// ErrNotFound signals a missing record on read/delete, or a lost
	// update detected mid-rename.
	ErrNotFound = errors.New("not found")

	// ErrCredentialsNotProvided signals that a role escalation was
	// requested without Administrator credentials.
	ErrCredentialsNotProvided = errors.New("administrator credentials required")
)
