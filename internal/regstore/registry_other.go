//go:build !windows

package regstore

// Open returns ErrUnsupported; use a snapshot file on this platform.
func Open() (Reader, error) {
	return nil, ErrUnsupported
}
