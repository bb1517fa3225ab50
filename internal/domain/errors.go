package domain

import "errors"

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")
	// ErrFileTooLarge is returned by FileStorage when an upload exceeds its cap.
	ErrFileTooLarge = errors.New("file too large")
)
