//go:build windows

package regstore

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// Registry reads from the native Windows registry.
type Registry struct{}

// Open returns a Reader backed by the native registry.
func Open() (Reader, error) {
	return &Registry{}, nil
}

// ReadString implements Reader.
func (r *Registry) ReadString(path Path, name string) (string, error) {
	k, err := openKey(path, name)
	if err != nil {
		return "", err
	}
	defer k.Close()

	s, _, err := k.GetStringValue(name)
	if err != nil {
		return "", valueError(path, name, err)
	}
	return s, nil
}

// ReadInt implements Reader.
func (r *Registry) ReadInt(path Path, name string) (uint32, error) {
	k, err := openKey(path, name)
	if err != nil {
		return 0, err
	}
	defer k.Close()

	n, typ, err := k.GetIntegerValue(name)
	if err != nil {
		return 0, valueError(path, name, err)
	}
	if typ != registry.DWORD {
		return 0, &ReadError{Kind: KindWrongType, Path: path, Name: name}
	}
	return uint32(n), nil
}

func openKey(path Path, name string) (registry.Key, error) {
	root, err := rootKey(path.Root())
	if err != nil {
		return 0, err
	}

	k, err := registry.OpenKey(root, path.Subkey(), registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return 0, &ReadError{Kind: KindPathNotFound, Path: path, Name: name, Err: err}
		}
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return k, nil
}

func valueError(path Path, name string, err error) error {
	switch {
	case errors.Is(err, registry.ErrNotExist):
		return &ReadError{Kind: KindValueNotFound, Path: path, Name: name, Err: err}
	case errors.Is(err, registry.ErrUnexpectedType):
		return &ReadError{Kind: KindWrongType, Path: path, Name: name, Err: err}
	default:
		return fmt.Errorf("failed to query %q under %s: %w", name, path, err)
	}
}

func rootKey(r Root) (registry.Key, error) {
	switch r {
	case LocalMachine:
		return registry.LOCAL_MACHINE, nil
	case CurrentUser:
		return registry.CURRENT_USER, nil
	case ClassesRoot:
		return registry.CLASSES_ROOT, nil
	case Users:
		return registry.USERS, nil
	default:
		return 0, fmt.Errorf("unknown registry root %q", r)
	}
}
