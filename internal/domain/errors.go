package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Pet errors
	ErrMsgPetNotFound = "pet not found"

	// Settings errors
	ErrMsgSettingsNotFound    = "settings not found"
	ErrMsgDatabaseNotSelected = "no database selected"
	ErrMsgXPPropertyNotSet    = "experience property not configured"

	// Task database errors
	ErrMsgNotionNotConnected = "notion is not connected"
	ErrMsgPropertyNotFound   = "property not found"
	ErrMsgPropertyNotSelect  = "property is not a select property"
	ErrMsgOptionNotFound     = "option not found"
	ErrMsgUpstream           = "task database request failed"

	// Auth errors
	ErrMsgUnauthorized = "unauthorized"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Pet errors
	ErrPetNotFound = errors.New(ErrMsgPetNotFound)

	// Settings errors
	ErrSettingsNotFound    = errors.New(ErrMsgSettingsNotFound)
	ErrDatabaseNotSelected = errors.New(ErrMsgDatabaseNotSelected)
	ErrXPPropertyNotSet    = errors.New(ErrMsgXPPropertyNotSet)

	// Task database errors
	ErrNotionNotConnected = errors.New(ErrMsgNotionNotConnected)
	ErrPropertyNotFound   = errors.New(ErrMsgPropertyNotFound)
	ErrPropertyNotSelect  = errors.New(ErrMsgPropertyNotSelect)
	ErrOptionNotFound     = errors.New(ErrMsgOptionNotFound)
	ErrUpstream           = errors.New(ErrMsgUpstream)

	// Auth errors
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
