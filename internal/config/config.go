package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/vcenv/internal/fsops"
)

// Environment variables read by vcenv itself.
const (
	EnvRoot  = "VCENV_ROOT"
	EnvStore = "VCENV_STORE"
)

// Config is the content of config.yaml.
type Config struct {
	// DefaultVersion is used by commands run without a VERSION argument
	DefaultVersion string `yaml:"default_version,omitempty" json:"default_version,omitempty"`

	// StoreFile is a registry snapshot read instead of the live registry
	StoreFile string `yaml:"store_file,omitempty" json:"store_file,omitempty"`

	// MinimumUpdateLevel overrides the minimum service pack per version
	MinimumUpdateLevel map[string]uint32 `yaml:"minimum_update_level,omitempty" json:"minimum_update_level,omitempty"`
}

// Load reads config.yaml. A missing file yields an empty Config.
func Load(fsys fsops.FS, path string) (*Config, error) {
	exists, err := fsys.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config %s: %w", path, err)
	}
	if !exists {
		return &Config{}, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes config.yaml content.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config atomically.
func (c *Config) Save(fsys fsops.FS, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return fsys.AtomicWrite(path, data, 0644)
}

// StoreSource picks the snapshot file to read: the flag value first, then
// VCENV_STORE, then store_file. An empty result means the live registry.
func (c *Config) StoreSource(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(EnvStore); v != "" {
		return v
	}
	return c.StoreFile
}

// Minimum returns the configured minimum update level for a version token.
func (c *Config) Minimum(token string) (uint32, bool) {
	level, ok := c.MinimumUpdateLevel[token]
	return level, ok
}
