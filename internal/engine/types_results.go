package engine

import (
	"github.com/danieljhkim/vcenv/internal/planner"
	"github.com/danieljhkim/vcenv/internal/toolchain"
)

// PrepareResult represents the outcome of Prepare.
type PrepareResult struct {
	// Profile is the selected profile, with configured overrides
	Profile *toolchain.Profile

	// Resolution is nil when the installation was not found
	Resolution *toolchain.Resolution

	// Verdict is the completeness check result
	Verdict toolchain.Verdict

	// Plan is the composed plan (nil when resolution failed)
	Plan *planner.EnvironmentPlan
}

// CheckResult represents the outcome of Check.
type CheckResult struct {
	Profile    *toolchain.Profile
	Resolution *toolchain.Resolution
	Verdict    toolchain.Verdict
}

// ScriptResult represents a rendered script.
type ScriptResult struct {
	*PrepareResult

	// Script is the rendered content
	Script []byte

	// Path is where the script was written (empty if not written)
	Path string
}

// ProfileInfo describes a supported version for listing.
type ProfileInfo struct {
	Version     string   `json:"version"`
	Aliases     []string `json:"aliases"`
	Product     string   `json:"product"`
	Editions    []string `json:"editions"`
	Minimum     uint32   `json:"minimum_update_level"`
	SupportsSDK bool     `json:"supports_sdk"`
}
