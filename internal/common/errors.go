// Package common defines shared sentinel errors used across the client and
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Deployment faults. Always 500-class; never user-recoverable.
	ErrNotConfigured = errors.New("server configuration error")

	// Caller faults. The user can correct the input and resubmit.
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// Upload-path faults.
	ErrSigning  = errors.New("signing error")
	ErrPresign  = errors.New("presign failed")
	ErrTransfer = errors.New("transfer failed")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
)
