package entities

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExists       = errors.New("session already exists")
	ErrSessionClosed       = errors.New("session is closed")
	ErrSessionAlreadyEnded = errors.New("session already ended")
	ErrSessionBusy         = errors.New("session is processing another turn")
	ErrInvalidTransition   = errors.New("invalid session state transition")

	// Summary errors
	ErrSummaryAlreadySet = errors.New("summary already set")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
)
