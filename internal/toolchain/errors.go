package toolchain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownVersion indicates the version token matches no profile.
	ErrUnknownVersion = errors.New("unknown version")

	// ErrMissingFragment indicates a mandatory fragment could not be read.
	ErrMissingFragment = errors.New("mandatory fragment missing")

	// ErrUnsupportedOption indicates an option the profile does not offer.
	ErrUnsupportedOption = errors.New("unsupported option")

	// ErrOutdated indicates the installed update level is below the minimum.
	ErrOutdated = errors.New("outdated installation")
)

// UnknownVersionError reports an unsupported version token.
type UnknownVersionError struct {
	Token string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown version %q (supported: %s)", e.Token, supportedTokens())
}

func (e *UnknownVersionError) Is(target error) bool {
	return target == ErrUnknownVersion
}

// MissingFragmentError reports a mandatory role that no source could supply.
type MissingFragmentError struct {
	Profile string
	Role    Role

	// Err is the last store failure.
	Err error
}

func (e *MissingFragmentError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("%s: installation not found", e.Profile)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s not found: %v", e.Profile, e.Role, e.Err)
	}
	return fmt.Sprintf("%s: %s not found", e.Profile, e.Role)
}

func (e *MissingFragmentError) Is(target error) bool {
	return target == ErrMissingFragment
}

func (e *MissingFragmentError) Unwrap() error {
	return e.Err
}

// UnsupportedOptionError reports an option requested for a profile that
// does not support it.
type UnsupportedOptionError struct {
	Profile string
	Option  string
}

func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("option '%s' not supported for this version (%s)", e.Option, e.Profile)
}

func (e *UnsupportedOptionError) Is(target error) bool {
	return target == ErrUnsupportedOption
}

// OutdatedError reports an installation below the profile minimum.
type OutdatedError struct {
	Product  string
	Current  uint32
	Required uint32
}

func (e *OutdatedError) Error() string {
	return fmt.Sprintf("%s: update level %d is older than the required level %d", e.Product, e.Current, e.Required)
}

func (e *OutdatedError) Is(target error) bool {
	return target == ErrOutdated
}
