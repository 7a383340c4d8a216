package regstore

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any ReadError whose key or value does not exist.
	ErrNotFound = errors.New("not found")

	// ErrWrongType matches a ReadError for a value of an unexpected type.
	ErrWrongType = errors.New("wrong value type")

	// ErrUnsupported is returned by Open on platforms without a native store.
	ErrUnsupported = errors.New("native registry is not available on this platform")
)

// Kind tags the cause of a ReadError.
type Kind int

const (
	KindPathNotFound Kind = iota + 1
	KindValueNotFound
	KindWrongType
)

func (k Kind) String() string {
	switch k {
	case KindPathNotFound:
		return "path not found"
	case KindValueNotFound:
		return "value not found"
	case KindWrongType:
		return "wrong type"
	default:
		return "unknown"
	}
}

// ReadError describes a failed read of a single value.
type ReadError struct {
	Kind Kind
	Path Path
	Name string

	// Err is the underlying platform error, if any.
	Err error
}

func (e *ReadError) Error() string {
	switch e.Kind {
	case KindPathNotFound:
		return fmt.Sprintf("could not open %s", e.Path)
	case KindValueNotFound:
		return fmt.Sprintf("value %q not found under %s", e.Name, e.Path)
	case KindWrongType:
		return fmt.Sprintf("value %q under %s has an unexpected type", e.Name, e.Path)
	default:
		return fmt.Sprintf("reading %q under %s failed", e.Name, e.Path)
	}
}

// Is lets errors.Is match ErrNotFound and ErrWrongType.
func (e *ReadError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindPathNotFound || e.Kind == KindValueNotFound
	case ErrWrongType:
		return e.Kind == KindWrongType
	}
	return false
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a missing key or missing value.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
