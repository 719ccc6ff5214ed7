package api

import "errors"

var (
	// ErrUnauthorized marks 401/403 on gated actions after the one
	// refresh attempt. Callers abort without mutating local state.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrQuotaExhausted marks a start-spread rejected for lack of quota.
	ErrQuotaExhausted = errors.New("spread quota exhausted")

	// ErrLoginPending marks a device login the user has not approved yet.
	ErrLoginPending = errors.New("login not approved yet")
)
