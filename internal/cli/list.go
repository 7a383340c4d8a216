package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vcenv/internal/config"
	"github.com/danieljhkim/vcenv/internal/engine"
	"github.com/danieljhkim/vcenv/internal/fsops"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported compiler versions",
	Long: `Display the supported compiler versions, their aliases and editions, and the
minimum service pack level each requires (after config.yaml overrides).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Listing needs no registry, only the configured minimums
		paths, err := config.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get config paths: %w", err)
		}
		fs := fsops.NewRealFS()
		cfg, err := config.Load(fs, paths.Config)
		if err != nil {
			return err
		}
		eng := engine.New(nil, nil, fs, nil, cfg, *paths, nil)

		infos := eng.Profiles()
		if jsonOutput {
			return outputJSON(infos)
		}

		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			sdk := "no"
			if info.SupportsSDK {
				sdk = "yes"
			}
			rows = append(rows, []string{
				info.Version,
				strings.Join(info.Aliases, ", "),
				info.Product,
				strings.Join(info.Editions, ", "),
				fmt.Sprintf("SP %d", info.Minimum),
				sdk,
			})
		}
		PrintTable([]string{"VERSION", "ALIASES", "PRODUCT", "EDITIONS", "MINIMUM", "FX"}, rows)
		return nil
	},
}
