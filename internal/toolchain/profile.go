// Package toolchain describes supported compiler generations as data and
// resolves them against the configuration store.
//
// A Profile lists where each directory fragment of one generation is
// recorded, which environment variables are built from those fragments, and
// which update level counts as current. The Resolver reads the fragments for
// one profile; Check compares the installed update level with the minimum.
package toolchain

import (
	"github.com/danieljhkim/vcenv/internal/regstore"
)

// Role names one fragment of a resolved installation. Roles appear as
// {role} placeholders in variable templates.
type Role string

const (
	RoleProduct    Role = "product"     // VC product directory
	RoleStudio     Role = "studio"      // Visual Studio product directory
	RoleInstall    Role = "install"     // IDE install directory (7.1)
	RoleCommon     Role = "common"      // Common tools directory
	RoleIDE        Role = "ide"         // IDE environment directory
	RoleCLRVersion Role = "clr_version" // .NET runtime version
	RoleCLRRoot    Role = "clr_root"    // .NET framework install root
	RoleCLRSDK     Role = "clr_sdk"     // .NET framework SDK root
	RoleSDK        Role = "sdk"         // Windows SDK (optional extension)
)

// OptionSDK is the user-facing name of the Windows SDK extension.
const OptionSDK = "fx"

// Options carries profile-specific switches.
type Options struct {
	// SDK enables the Windows SDK extension (formerly WinFX).
	SDK bool
}

// Condition gates a fragment, variable or part on the options.
type Condition int

const (
	Always Condition = iota
	WithSDK
	WithoutSDK
)

// Holds reports whether the condition is met for the options.
func (c Condition) Holds(o Options) bool {
	switch c {
	case WithSDK:
		return o.SDK
	case WithoutSDK:
		return !o.SDK
	default:
		return true
	}
}

// Source locates a fragment: either a value in the store or a derivation
// from fragments resolved earlier.
type Source struct {
	// Base is an absolute key. When zero, Key is relative to the edition.
	Base regstore.Path

	// Key is a backslash-separated subkey.
	Key string

	// Value is the value name under the key.
	Value string

	// Derive, when set, is a template over earlier roles used instead of a
	// store read, e.g. `{studio}\Common7`.
	Derive string
}

func (s Source) path(ed Edition) regstore.Path {
	if s.Base.IsZero() {
		return ed.Key.Join(s.Key)
	}
	return s.Base.Join(s.Key)
}

// FragmentSpec declares one fragment of a profile.
type FragmentSpec struct {
	Role     Role
	Source   Source
	Fallback *Source
	Optional bool
	When     Condition
}

// Edition is one installation variant of a generation. Editions are probed
// in order; the first whose root fragment exists wins.
type Edition struct {
	Name    string
	Variant string
	Key     regstore.Path
}

// Part is one ;-separated element of a variable value.
type Part struct {
	Template string
	When     Condition
}

// VarSpec declares one environment variable of a profile.
type VarSpec struct {
	Name  string
	Parts []Part

	// Append keeps the variable's previous value as the final segment.
	Append bool
	When   Condition
}

// UpdateSpec says where the installed update level is recorded and which
// level is the oldest acceptable one.
type UpdateSpec struct {
	Source  Source
	Minimum uint32
}

// Profile describes how one compiler generation is resolved and how its
// build environment is assembled. Built-in profiles are never mutated.
type Profile struct {
	Version     string
	Aliases     []string
	Product     string
	Editions    []Edition
	Root        Role
	Fragments   []FragmentSpec
	Variables   []VarSpec
	Update      UpdateSpec
	Marker      Role
	SupportsSDK bool
}

// Tokens returns the canonical version and its aliases.
func (p *Profile) Tokens() []string {
	return append([]string{p.Version}, p.Aliases...)
}

// Roles returns every declared role in declaration order.
func (p *Profile) Roles() []Role {
	roles := make([]Role, 0, len(p.Fragments))
	for _, f := range p.Fragments {
		roles = append(roles, f.Role)
	}
	return roles
}

// WithMinimum returns a copy of the profile with a different minimum
// update level.
func (p *Profile) WithMinimum(level uint32) *Profile {
	cp := *p
	cp.Update.Minimum = level
	return &cp
}

// ValidateOptions rejects options the profile does not offer.
func (p *Profile) ValidateOptions(o Options) error {
	if o.SDK && !p.SupportsSDK {
		return &UnsupportedOptionError{Profile: p.Product, Option: OptionSDK}
	}
	return nil
}

func (p *Profile) fragment(role Role) (FragmentSpec, bool) {
	for _, f := range p.Fragments {
		if f.Role == role {
			return f, true
		}
	}
	return FragmentSpec{}, false
}

// Fragments maps roles to normalized values.
type Fragments map[Role]string

// Resolution is the result of resolving a profile against the store.
type Resolution struct {
	Profile   *Profile
	Edition   Edition
	Options   Options
	Fragments Fragments
}

// Fragment returns the value of a role and whether it was resolved.
func (r *Resolution) Fragment(role Role) (string, bool) {
	v, ok := r.Fragments[role]
	return v, ok
}
