package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vcenv/internal/config"
	"github.com/danieljhkim/vcenv/internal/fsops"
	"github.com/danieljhkim/vcenv/internal/toolchain"
)

var (
	configDefault string
	configStore   string
	configMinimum []string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the vcenv configuration",
	Long: `Show config.yaml, or update it when flags are given.

  vcenv config --default-version 80
  vcenv config --minimum 8.0=2 --store-file C:\snapshots\vs2005.yaml

Versions are stored under their canonical id; a new minimum replaces one set
through an alias.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get config paths: %w", err)
		}

		fs := fsops.NewRealFS()
		cfg, err := config.Load(fs, paths.Config)
		if err != nil {
			return err
		}

		changed, err := applyConfigFlags(cfg)
		if err != nil {
			return err
		}
		if changed {
			if err := cfg.Save(fs, paths.Config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
		}

		if jsonOutput {
			return outputJSON(cfg)
		}

		if changed {
			PrintSuccess(fmt.Sprintf("Updated %s", paths.Config))
		}
		PrintSection("Configuration")
		PrintLabelValue("File", paths.Config)
		PrintLabelValue("Default version", orNone(cfg.DefaultVersion))
		PrintLabelValue("Store file", orNone(cfg.StoreFile))

		versions := make([]string, 0, len(cfg.MinimumUpdateLevel))
		for v := range cfg.MinimumUpdateLevel {
			versions = append(versions, v)
		}
		sort.Strings(versions)
		for _, v := range versions {
			PrintLabelValue("Minimum "+v, fmt.Sprintf("SP %d", cfg.MinimumUpdateLevel[v]))
		}
		return nil
	},
}

// applyConfigFlags copies the given flags into cfg and reports whether
// anything changed.
func applyConfigFlags(cfg *config.Config) (bool, error) {
	changed := false

	if configDefault != "" {
		p, err := toolchain.Lookup(configDefault)
		if err != nil {
			return false, err
		}
		cfg.DefaultVersion = p.Version
		changed = true
	}

	if configStore != "" {
		cfg.StoreFile = configStore
		changed = true
	}

	for _, kv := range configMinimum {
		token, level, ok := strings.Cut(kv, "=")
		if !ok {
			return false, fmt.Errorf("invalid --minimum %q: want VERSION=LEVEL", kv)
		}
		p, err := toolchain.Lookup(token)
		if err != nil {
			return false, err
		}
		n, err := strconv.ParseUint(level, 10, 32)
		if err != nil {
			return false, fmt.Errorf("invalid --minimum %q: %w", kv, err)
		}

		if cfg.MinimumUpdateLevel == nil {
			cfg.MinimumUpdateLevel = make(map[string]uint32)
		}
		for _, t := range p.Tokens() {
			delete(cfg.MinimumUpdateLevel, t)
		}
		cfg.MinimumUpdateLevel[p.Version] = uint32(n)
		changed = true
	}

	return changed, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	configCmd.Flags().StringVar(&configDefault, "default-version", "", "Version used when check or script get no VERSION")
	configCmd.Flags().StringVar(&configStore, "store-file", "", "Registry snapshot read instead of the live registry")
	configCmd.Flags().StringArrayVar(&configMinimum, "minimum", nil, "Minimum service pack as VERSION=LEVEL (repeatable)")
}
