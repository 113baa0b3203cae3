package model

import "errors"

// Common errors used across the application
var (
	// Command errors
	ErrDuplicateCommand = errors.New("command is already registered")

	// Storage errors
	ErrPlayerNotFound = errors.New("player not found")
)
