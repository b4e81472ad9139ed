package service

import "errors"

// Sentinel errors returned by all services. Handlers map them to HTTP
// statuses with errors.Is, so wrapped messages stay free-form.
var (
	// ErrValidation covers malformed or out-of-range input, including a
	// duplicate username on user creation. The caller can fix and resubmit.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers both a genuinely missing record and a record owned
	// by another admin. The two cases are deliberately indistinguishable so
	// responses never leak the existence of other tenants' data.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is an ownership violation on a record whose existence the
	// caller already knows (it was picked from an owned list).
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is a storage uniqueness violation lost to a concurrent
	// writer. Retryable.
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials is returned on any login failure; it never
	// distinguishes a wrong password from an unknown account.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
