// Package regstore reads typed values from a hierarchical configuration store
// such as the Windows registry.
//
// Callers consume the store through the Reader interface. Two implementations
// exist: the native registry (Windows only) and MemStore, an in-memory tree
// that can be populated by hand or loaded from a snapshot file. Both report
// failures as *ReadError so that "not installed" can be told apart from
// "installed but malformed".
package regstore

import (
	"fmt"
	"strings"
)

// Root identifies one of the fixed top-level hives of the store.
type Root string

const (
	LocalMachine  Root = "HKLM"
	CurrentUser   Root = "HKCU"
	ClassesRoot   Root = "HKCR"
	Users         Root = "HKU"
	pathSeparator      = `\`
)

var rootAliases = map[string]Root{
	"HKLM":               LocalMachine,
	"HKEY_LOCAL_MACHINE": LocalMachine,
	"HKCU":               CurrentUser,
	"HKEY_CURRENT_USER":  CurrentUser,
	"HKCR":               ClassesRoot,
	"HKEY_CLASSES_ROOT":  ClassesRoot,
	"HKU":                Users,
	"HKEY_USERS":         Users,
}

// Path is a key location in the store: a root plus ordered segments.
// Paths are values; Join returns a new Path and never modifies the receiver.
type Path struct {
	root     Root
	segments []string
}

// ParsePath parses a backslash-separated key such as
// `HKLM\SOFTWARE\Microsoft\VisualStudio\8.0`.
func ParsePath(s string) (Path, error) {
	parts := splitSegments(s)
	if len(parts) == 0 {
		return Path{}, fmt.Errorf("invalid store path: empty")
	}

	root, ok := rootAliases[strings.ToUpper(parts[0])]
	if !ok {
		return Path{}, fmt.Errorf("invalid store path %q: unknown root %q", s, parts[0])
	}

	return Path{root: root, segments: parts[1:]}, nil
}

// MustParsePath is like ParsePath but panics on error. It is meant for
// package-level tables.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Root returns the hive of the path.
func (p Path) Root() Root {
	return p.root
}

// Subkey returns the segments joined with backslashes, without the root.
func (p Path) Subkey() string {
	return strings.Join(p.segments, pathSeparator)
}

// Join appends a relative backslash-separated key to the path.
// An empty rel returns an equal path.
func (p Path) Join(rel string) Path {
	extra := splitSegments(rel)
	segs := make([]string, 0, len(p.segments)+len(extra))
	segs = append(segs, p.segments...)
	segs = append(segs, extra...)
	return Path{root: p.root, segments: segs}
}

// Parent returns the enclosing key and false when p is already a root.
func (p Path) Parent() (Path, bool) {
	if len(p.segments) == 0 {
		return p, false
	}
	return Path{root: p.root, segments: p.segments[:len(p.segments)-1]}, true
}

// IsZero reports whether p was never set.
func (p Path) IsZero() bool {
	return p.root == ""
}

func (p Path) String() string {
	if len(p.segments) == 0 {
		return string(p.root)
	}
	return string(p.root) + pathSeparator + p.Subkey()
}

func splitSegments(s string) []string {
	raw := strings.Split(s, pathSeparator)
	out := make([]string, 0, len(raw))
	for _, seg := range raw {
		if seg == "" {
			continue
		}
		out = append(out, seg)
	}
	return out
}
