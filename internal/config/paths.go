// Package config manages vcenv configuration and filesystem paths.
//
// The default root is ~/.vcenv/ containing config.yaml and the scripts/
// directory used by `vcenv script` when no output file is given. The root
// can be moved with VCENV_ROOT.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/vcenv/internal/fsops"
)

// Paths contains all the filesystem paths used by vcenv.
type Paths struct {
	// Root is the base directory for all vcenv data (default: ~/.vcenv)
	Root string

	// Scripts is the default directory for generated environment scripts
	Scripts string

	// Config is the path to the global config file
	Config string
}

// DefaultPaths returns the default paths for vcenv.
// Paths can be overridden with environment variables:
// - VCENV_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(EnvRoot)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".vcenv")
	}
	return PathsAt(root), nil
}

// PathsAt returns the layout below an explicit root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:    root,
		Scripts: filepath.Join(root, "scripts"),
		Config:  filepath.Join(root, "config.yaml"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories(fs fsops.FS) error {
	for _, dir := range []string{p.Root, p.Scripts} {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
