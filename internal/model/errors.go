package model

import "errors"

// Common errors used across the application
var (
	// Registry errors
	ErrServiceNotRegistered = errors.New("service not registered")

	// Storage errors
	ErrKeyNotFound       = errors.New("key not found")
	ErrInvalidKey        = errors.New("invalid key")
	ErrUnsupportedSchema = errors.New("unsupported schema version")
	ErrSaveUnavailable   = errors.New("save unavailable")

	// Catalog errors
	ErrItemNotFound    = errors.New("item not found")
	ErrUnknownCurrency = errors.New("unknown currency")

	// Config errors
	ErrInvalidConfig = errors.New("invalid configuration")

	// Game loop errors
	ErrUnknownGameMode = errors.New("unknown game mode")
	ErrUnknownState    = errors.New("unknown game state")
)
