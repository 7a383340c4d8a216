package planner

import (
	"strings"

	"github.com/danieljhkim/vcenv/internal/toolchain"
)

// findConflicts returns the planned segments that already occur in the
// original list value. Segments compare case-insensitively and without
// trailing separators, as Windows does for search paths.
func findConflicts(segments []string, original string) []string {
	if original == "" {
		return nil
	}

	existing := make(map[string]bool)
	for _, s := range strings.Split(original, Separator) {
		if s = segmentKey(s); s != "" {
			existing[s] = true
		}
	}

	var found []string
	for _, s := range segments {
		if existing[segmentKey(s)] {
			found = append(found, s)
		}
	}
	return found
}

func segmentKey(s string) string {
	return strings.ToLower(toolchain.Normalize(strings.TrimSpace(s)))
}
