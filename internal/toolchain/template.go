package toolchain

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/vcenv/internal/regstore"
)

// missingRoleError is returned when a template refers to an unresolved role.
// It matches regstore.ErrNotFound so derivations fall through like reads.
type missingRoleError struct {
	role Role
}

func (e *missingRoleError) Error() string {
	return fmt.Sprintf("role %s is not resolved", e.role)
}

func (e *missingRoleError) Is(target error) bool {
	return target == regstore.ErrNotFound
}

// Expand substitutes {role} placeholders with fragment values. It fails
// with an error matching regstore.ErrNotFound when a role is absent.
func Expand(tmpl string, frags Fragments) (string, error) {
	var b strings.Builder
	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}

		b.WriteString(rest[:open])
		role := Role(rest[open+1 : open+end])
		v, ok := frags[role]
		if !ok {
			return "", &missingRoleError{role: role}
		}
		b.WriteString(v)
		rest = rest[open+end+1:]
	}
}
