package engine

import "errors"

var (
	// ErrNoVersion indicates no version was given and none is configured.
	ErrNoVersion = errors.New("no version given and no default_version configured")

	// ErrNoCommand indicates Run was called without a command.
	ErrNoCommand = errors.New("no command to run")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")
)
