package toolchain

import (
	"fmt"

	"github.com/danieljhkim/vcenv/internal/regstore"
)

// DiagnosticCode identifies the outdated service pack condition in
// compiler-style diagnostics.
const DiagnosticCode = "SP"

// Status is the outcome of a completeness check.
type Status int

const (
	StatusNotFound Status = iota
	StatusOutdated
	StatusCurrent

	// StatusIncomplete means the installation exists but a mandatory
	// fragment other than the root is missing.
	StatusIncomplete
)

func (s Status) String() string {
	switch s {
	case StatusCurrent:
		return "current"
	case StatusOutdated:
		return "outdated"
	case StatusIncomplete:
		return "incomplete"
	default:
		return "not found"
	}
}

// Verdict is the result of Check.
type Verdict struct {
	Status Status

	// Product is the detected product, e.g. "Visual C++ 8.0 SP 1".
	Product string

	Current  uint32
	Required uint32

	// LevelErr is set when the update level could not be read; Current is
	// then 0.
	LevelErr error

	Diagnostic string

	// Cause is the resolution failure behind StatusNotFound or
	// StatusIncomplete, when one is known.
	Cause *MissingFragmentError
}

// OK reports whether the installation is present and current.
func (v Verdict) OK() bool {
	return v.Status == StatusCurrent
}

// Err returns *OutdatedError for an outdated installation and
// *MissingFragmentError, with the missing role when known, for a missing or
// incomplete one; nil otherwise.
func (v Verdict) Err() error {
	switch v.Status {
	case StatusOutdated:
		return &OutdatedError{Product: v.Product, Current: v.Current, Required: v.Required}
	case StatusNotFound, StatusIncomplete:
		if v.Cause != nil {
			return v.Cause
		}
		return &MissingFragmentError{Profile: v.Product}
	default:
		return nil
	}
}

// Check compares the installed update level of res against the minimum of
// p. A nil res means the installation could not be resolved.
func Check(store regstore.Reader, p *Profile, res *Resolution) Verdict {
	if res == nil {
		return Verdict{
			Status:     StatusNotFound,
			Product:    p.Product,
			Required:   p.Update.Minimum,
			Diagnostic: fmt.Sprintf("%s: installation not found", p.Product),
		}
	}

	v := Verdict{Required: p.Update.Minimum}
	level, err := store.ReadInt(p.Update.Source.path(res.Edition), p.Update.Source.Value)
	if err != nil {
		v.LevelErr = err
		level = 0
	}
	v.Current = level
	v.Product = productLabel(res.Edition.Name, level, err)

	marker, ok := res.Fragment(p.Marker)
	if !ok {
		marker, _ = res.Fragment(p.Root)
	}

	if level < p.Update.Minimum {
		v.Status = StatusOutdated
		v.Diagnostic = outdatedDiagnostic(marker, level, p.Update.Minimum, err)
		return v
	}

	v.Status = StatusCurrent
	if err != nil {
		v.Diagnostic = fmt.Sprintf("%s: update level unreadable (%v); minimum %d accepted", v.Product, err, p.Update.Minimum)
	} else {
		v.Diagnostic = fmt.Sprintf("%s: update level %d, minimum %d", v.Product, level, p.Update.Minimum)
	}
	return v
}

// Unresolved turns a resolution failure into a verdict. Only a missing root
// fragment means the installation was not found; any other missing role
// leaves it incomplete and names that role.
func Unresolved(p *Profile, err *MissingFragmentError) Verdict {
	if err.Role == "" || err.Role == p.Root {
		v := Check(nil, p, nil)
		v.Cause = err
		return v
	}
	return Verdict{
		Status:     StatusIncomplete,
		Product:    p.Product,
		Required:   p.Update.Minimum,
		Diagnostic: fmt.Sprintf("%s: installation incomplete, %s not found", p.Product, err.Role),
		Cause:      err,
	}
}

func productLabel(name string, level uint32, err error) string {
	if err != nil || level == 0 {
		return name + " (no ServicePack installed)"
	}
	return fmt.Sprintf("%s SP %d", name, level)
}

// outdatedDiagnostic mimics "file(line) : severity code: message" so build
// log parsers pick it up.
func outdatedDiagnostic(marker string, current, required uint32, readErr error) string {
	prefix := fmt.Sprintf(`%s\install.htm(1) : warning %s: `, marker, DiagnosticCode)
	if readErr != nil {
		return prefix + fmt.Sprintf("update level unreadable (%v), assuming %d; service pack %d is required, there's a newer service pack available!", readErr, current, required)
	}
	return prefix + fmt.Sprintf("service pack %d is installed but %d is required, there's a newer service pack available!", current, required)
}
