// Package planner handles the planning phase of environment composition.
//
// The planner turns a toolchain resolution into a deterministic
// EnvironmentPlan: the ordered list of variable assignments that prepare a
// build environment. It never reads or writes the process environment; the
// caller supplies a snapshot of the original values and applies the plan.
//
// Key responsibilities:
//   - Compose list variables as new segments followed by the original value
//   - Skip variables and segments gated off by profile options
//   - Report planned segments the original value already contains
//   - Render the plan as a script for cmd, PowerShell or sh
package planner
