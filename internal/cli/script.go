package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vcenv/internal/engine"
	"github.com/danieljhkim/vcenv/internal/planner"
)

var (
	scriptShell  string
	scriptOutput string
	scriptSave   bool
	scriptForce  bool
	scriptSDK    bool
)

var scriptCmd = &cobra.Command{
	Use:   "script [fx] [VERSION]",
	Short: "Write the build environment as a shell script",
	Long: `Render the build environment of a compiler version as a script that can be
sourced later without running vcenv again.

Appended variables refer to their own value at the time the script runs, so
the script can be used from any starting environment. The script is printed
unless -o names a file or --save writes it to the vcenv scripts directory.`,
	Args: optionalVersion,
	RunE: func(cmd *cobra.Command, args []string) error {
		shell, err := planner.ParseShell(scriptShell)
		if err != nil {
			return err
		}

		fx, args := stripSDKToken(args)
		var version string
		if len(args) > 0 {
			version = args[0]
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.WriteScript(&engine.ScriptRequest{
			PrepareRequest: engine.PrepareRequest{Version: version, SDK: scriptSDK || fx, Force: scriptForce},
			Shell:          shell,
			Output:         scriptOutput,
			ToDir:          scriptSave,
		})
		if result != nil {
			reportVerdict(result.PrepareResult, err)
		}
		if err != nil {
			return err
		}

		if result.Path == "" {
			_, err := stdout.Write(result.Script)
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]interface{}{
				"path":      result.Path,
				"shell":     shell,
				"version":   result.Profile.Version,
				"variables": result.Plan.Names(),
			})
		}
		PrintSuccess(fmt.Sprintf("Wrote %s for %s to %s",
			PrintCount(result.Plan.Len(), "variable", "variables"), result.Verdict.Product, result.Path))
		return nil
	},
}

func init() {
	scriptCmd.Flags().StringVarP(&scriptShell, "shell", "s", "cmd", "Script dialect: cmd, powershell or sh")
	scriptCmd.Flags().StringVarP(&scriptOutput, "output", "o", "", "Write the script to this file")
	scriptCmd.Flags().BoolVar(&scriptSave, "save", false, "Write the script to the vcenv scripts directory")
	scriptCmd.Flags().BoolVarP(&scriptForce, "force", "f", false, "Proceed even without the latest service pack")
	scriptCmd.Flags().BoolVarP(&scriptSDK, "sdk", "x", false, "Use the Windows SDK (formerly WinFX)")
}
