package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danieljhkim/vcenv/internal/regstore"
	"github.com/danieljhkim/vcenv/internal/toolchain"
)

// Separator joins the segments of list variables.
const Separator = ";"

// Compose builds the environment plan for a resolution. The snapshot holds
// variable values captured before anything is applied; an absent entry is
// treated as the empty string. Compose never touches the environment.
func Compose(res *toolchain.Resolution, snapshot map[string]string) (*EnvironmentPlan, error) {
	if res == nil || res.Profile == nil {
		return nil, fmt.Errorf("compose: no resolution")
	}

	p := res.Profile
	plan := NewEnvironmentPlan(p.Version, res.Edition.Name)

	for _, v := range p.Variables {
		if !v.When.Holds(res.Options) {
			continue
		}

		segments, err := expandParts(v, res)
		if err != nil {
			return nil, err
		}
		if len(segments) == 0 {
			continue
		}

		if !v.Append {
			plan.add(Assignment{Name: v.Name, Value: strings.Join(segments, Separator)})
			continue
		}

		original := snapshot[v.Name]
		var b strings.Builder
		for _, s := range segments {
			b.WriteString(s)
			b.WriteString(Separator)
		}
		b.WriteString(original)

		plan.add(Assignment{
			Name:     v.Name,
			Value:    b.String(),
			Original: original,
			Appended: true,
		})
		for _, s := range findConflicts(segments, original) {
			plan.addConflict(Conflict{Name: v.Name, Segment: s})
		}
	}

	return plan, nil
}

// expandParts expands the part templates of one variable. Parts whose
// condition does not hold or that refer to an unresolved role are skipped.
func expandParts(v toolchain.VarSpec, res *toolchain.Resolution) ([]string, error) {
	segments := make([]string, 0, len(v.Parts))
	for _, part := range v.Parts {
		if !part.When.Holds(res.Options) {
			continue
		}
		s, err := toolchain.Expand(part.Template, res.Fragments)
		if err != nil {
			if errors.Is(err, regstore.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("compose %s: %w", v.Name, err)
		}
		segments = append(segments, s)
	}
	return segments, nil
}
