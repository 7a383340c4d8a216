package planner

import (
	"encoding/json"
	"strings"
)

// EnvironmentPlan is the ordered set of environment assignments computed for
// one toolchain resolution. It is immutable once Compose returns it.
type EnvironmentPlan struct {
	// Version is the canonical version of the resolved profile
	Version string

	// Edition is the name of the selected installation variant
	Edition string

	assignments []Assignment
	index       map[string]int
	conflicts   []Conflict
}

// Assignment is a single variable assignment in application order.
type Assignment struct {
	// Name is the environment variable name
	Name string `json:"name"`

	// Value is the final composite value
	Value string `json:"value"`

	// Original is the value the variable had before the plan, for appended
	// variables only
	Original string `json:"original,omitempty"`

	// Appended reports whether Original is kept as the final segment
	Appended bool `json:"appended,omitempty"`
}

// Conflict is a planned segment that the original value already contains.
// This usually means the environment was prepared by an earlier run.
type Conflict struct {
	// Name is the variable carrying the duplicate
	Name string `json:"name"`

	// Segment is the planned segment found in the original value
	Segment string `json:"segment"`
}

// NewEnvironmentPlan creates a new empty EnvironmentPlan.
func NewEnvironmentPlan(version, edition string) *EnvironmentPlan {
	return &EnvironmentPlan{
		Version:     version,
		Edition:     edition,
		assignments: []Assignment{},
		index:       make(map[string]int),
		conflicts:   []Conflict{},
	}
}

// add records an assignment. A later assignment to the same name replaces
// the value but keeps the original position.
func (p *EnvironmentPlan) add(a Assignment) {
	if i, ok := p.index[a.Name]; ok {
		p.assignments[i] = a
		return
	}
	p.index[a.Name] = len(p.assignments)
	p.assignments = append(p.assignments, a)
}

func (p *EnvironmentPlan) addConflict(c Conflict) {
	p.conflicts = append(p.conflicts, c)
}

// Assignments returns the assignments in application order.
func (p *EnvironmentPlan) Assignments() []Assignment {
	out := make([]Assignment, len(p.assignments))
	copy(out, p.assignments)
	return out
}

// Value returns the planned value of a variable.
func (p *EnvironmentPlan) Value(name string) (string, bool) {
	i, ok := p.index[name]
	if !ok {
		return "", false
	}
	return p.assignments[i].Value, true
}

// Names returns the planned variable names in application order.
func (p *EnvironmentPlan) Names() []string {
	names := make([]string, len(p.assignments))
	for i, a := range p.assignments {
		names[i] = a.Name
	}
	return names
}

// Len returns the number of assignments.
func (p *EnvironmentPlan) Len() int {
	return len(p.assignments)
}

// Conflicts returns planned segments already present in original values.
func (p *EnvironmentPlan) Conflicts() []Conflict {
	out := make([]Conflict, len(p.conflicts))
	copy(out, p.conflicts)
	return out
}

// HasConflicts returns true if any original value already holds a planned
// segment.
func (p *EnvironmentPlan) HasConflicts() bool {
	return len(p.conflicts) > 0
}

// Lines returns NAME=value lines in application order.
func (p *EnvironmentPlan) Lines() []string {
	lines := make([]string, len(p.assignments))
	for i, a := range p.assignments {
		lines[i] = a.Name + "=" + a.Value
	}
	return lines
}

// String returns the plan as newline-terminated NAME=value lines.
func (p *EnvironmentPlan) String() string {
	var b strings.Builder
	for _, line := range p.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// MarshalJSON encodes the plan with its assignments and conflicts.
func (p *EnvironmentPlan) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Version     string       `json:"version"`
		Edition     string       `json:"edition"`
		Assignments []Assignment `json:"assignments"`
		Conflicts   []Conflict   `json:"conflicts,omitempty"`
	}{
		Version:     p.Version,
		Edition:     p.Edition,
		Assignments: p.assignments,
		Conflicts:   p.conflicts,
	})
}
