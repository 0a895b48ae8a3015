package domain

import "errors"

// Sentinel errors for archive operations
var (
	// ErrConsoleNotFound indicates the requested console does not exist
	ErrConsoleNotFound = errors.New("console not found")

	// ErrGameNotFound indicates the requested game does not exist
	ErrGameNotFound = errors.New("game not found")

	// ErrServerOffline indicates the archive server is unreachable
	ErrServerOffline = errors.New("archive server is unreachable")

	// ErrValidation indicates a client-side validation failure; no
	// request was sent
	ErrValidation = errors.New("validation failed")
)
