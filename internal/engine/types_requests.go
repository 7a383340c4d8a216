package engine

import "github.com/danieljhkim/vcenv/internal/planner"

// PrepareRequest represents a request to resolve and compose an environment.
type PrepareRequest struct {
	// Version is the version token (empty uses default_version)
	Version string

	// SDK enables the Windows SDK extension
	SDK bool

	// Force allows an outdated installation
	Force bool
}

// CheckRequest represents a completeness check without composing.
type CheckRequest struct {
	// Version is the version token (empty uses default_version)
	Version string

	// SDK enables the Windows SDK extension
	SDK bool
}

// RunRequest represents a request to prepare, apply and start a command.
type RunRequest struct {
	PrepareRequest

	// Command is the program followed by its arguments
	Command []string
}

// ScriptRequest represents a request to render the plan as a script.
type ScriptRequest struct {
	PrepareRequest

	// Shell is the script dialect
	Shell planner.Shell

	// Output is the file to write; empty writes to the scripts directory
	// when ToDir is set, otherwise nothing is written
	Output string

	// ToDir writes to <scripts>/vc<version>.<ext> when Output is empty
	ToDir bool
}
