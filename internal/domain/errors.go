package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput covers malformed or rejected caller input, including
	// rule conditions that reference unrecognized idea attributes.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDateFormat is returned when a date cannot be parsed as YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidRange is returned when a query range has start after end.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrNoMatch signals that no active rule matched an idea.
	// It is an actionable "needs manual routing" condition, not a crash.
	ErrNoMatch = errors.New("no matching routing rule")
	// ErrNoAvailableSlot signals capacity exhaustion within the search horizon.
	// Callers can widen the window or alert an operator; the engine never overbooks.
	ErrNoAvailableSlot = errors.New("no available calendar slot")
	// ErrSlotTaken is the persistence-layer uniqueness violation surfaced when a
	// concurrent routing request booked the same (date, destination) first.
	ErrSlotTaken         = errors.New("calendar slot already taken")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenRevoked      = errors.New("token revoked")
	ErrInvalidTransition = errors.New("invalid status transition")
)
