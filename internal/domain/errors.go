package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidCardStatus is returned when a card status is not one of
	// the defined states.
	ErrInvalidCardStatus = errors.New("invalid card status")

	// ErrInvalidCardType is returned when a card type is not valid.
	ErrInvalidCardType = errors.New("invalid card type")

	// ErrInvalidScopeKind is returned when a scope reference names a kind
	// other than deck or category.
	ErrInvalidScopeKind = errors.New("invalid scope kind")

	// ErrInvalidQuality is returned when an answer quality is outside its
	// defined domain.
	ErrInvalidQuality = errors.New("invalid answer quality")

	// ErrInvalidStatsPeriod is returned when a stats period is not valid.
	ErrInvalidStatsPeriod = errors.New("invalid stats period")
)
