package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/vcenv/internal/engine"
	"github.com/danieljhkim/vcenv/internal/toolchain"
)

var (
	checkForce bool
	checkSDK   bool
)

var checkCmd = &cobra.Command{
	Use:   "check [fx] [VERSION]",
	Short: "Check that a compiler version is installed and up to date",
	Long: `Resolve a compiler version against the registry and compare its service pack
level with the required minimum, without preparing an environment.

Exits with 1 when the installation is missing, or outdated unless -f is given.
Without VERSION the default_version from config.yaml is used.`,
	Args: optionalVersion,
	RunE: func(cmd *cobra.Command, args []string) error {
		fx, args := stripSDKToken(args)
		var version string
		if len(args) > 0 {
			version = args[0]
		}

		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Check(&engine.CheckRequest{Version: version, SDK: checkSDK || fx})
		if err != nil {
			return err
		}
		v := result.Verdict

		if jsonOutput {
			if err := outputJSON(checkJSON(result)); err != nil {
				return err
			}
		} else {
			PrintSection(result.Profile.Product)
			PrintLabelValue("Detected", v.Product)
			if result.Resolution != nil {
				PrintLabelValue("Edition", result.Resolution.Edition.Name)
				PrintLabelValue("Update level", fmt.Sprintf("%d (minimum %d)", v.Current, v.Required))
			}
			PrintLabelValueWithColor("Status", v.Status.String(), statusColor(v.Status))
			fmt.Fprintln(stdout)
			if v.Status == toolchain.StatusCurrent {
				PrintSuccess(v.Diagnostic)
			} else if v.Status == toolchain.StatusOutdated {
				fmt.Fprintln(stderr, v.Diagnostic)
			}
		}

		if v.Status == toolchain.StatusOutdated && checkForce {
			return nil
		}
		return v.Err()
	},
}

type checkOutput struct {
	Version    string `json:"version"`
	Product    string `json:"product"`
	Edition    string `json:"edition,omitempty"`
	Status     string `json:"status"`
	Current    uint32 `json:"current_level"`
	Required   uint32 `json:"required_level"`
	Diagnostic string `json:"diagnostic"`

	// MissingRole names the fragment that could not be found
	MissingRole string `json:"missing_role,omitempty"`
}

func checkJSON(result *engine.CheckResult) checkOutput {
	out := checkOutput{
		Version:    result.Profile.Version,
		Product:    result.Verdict.Product,
		Status:     result.Verdict.Status.String(),
		Current:    result.Verdict.Current,
		Required:   result.Verdict.Required,
		Diagnostic: result.Verdict.Diagnostic,
	}
	if result.Resolution != nil {
		out.Edition = result.Resolution.Edition.Name
	}
	if cause := result.Verdict.Cause; cause != nil {
		out.MissingRole = string(cause.Role)
	}
	return out
}

func statusColor(s toolchain.Status) *color.Color {
	switch s {
	case toolchain.StatusCurrent:
		return successColor
	case toolchain.StatusOutdated:
		return warningColor
	default:
		return errorColor
	}
}

func init() {
	checkCmd.Flags().BoolVarP(&checkForce, "force", "f", false, "Accept an outdated installation")
	checkCmd.Flags().BoolVarP(&checkSDK, "sdk", "x", false, "Also require the Windows SDK")
}
