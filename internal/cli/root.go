package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/vcenv/internal/engine"
	"github.com/danieljhkim/vcenv/internal/toolchain"
)

var (
	// Global flags
	jsonOutput  bool
	storeFile   string
	debugOutput bool

	// Root flags
	verbose  bool
	forceRun bool
	useSDK   bool

	// Colors for help output sections
	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// errNoVersion is returned when the root command gets no VERSION.
var errNoVersion = errors.New("VERSION is required")

const banner = "vcenv - Visual C++ command line build environment"

// rootCmd is the root command for vcenv.
var rootCmd = &cobra.Command{
	Use:     "vcenv [flags] [fx] VERSION [command [args...]]",
	Version: "dev",
	Short:   "Set up a Visual C++ command line build environment",
	Long: `vcenv reads where a Visual C++ toolchain is installed from the registry and
prepares PATH, INCLUDE, LIB and the related variables for it.

VERSION is one of 6, 60, 6.0, 71, 7.1, 80 or 8.0. Without a command the
variables are printed as NAME=value lines; with a command it is run in the
prepared environment and its exit code is returned.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRun:  func(cmd *cobra.Command, args []string) { setOutput(cmd) },
	RunE:              runRoot,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func runRoot(cmd *cobra.Command, args []string) error {
	fx, args, err := leadingArgs(cmd, args)
	if err != nil {
		return err
	}
	if help, _ := cmd.Flags().GetBool("help"); help {
		return cmd.Help()
	}
	sdk := useSDK || fx
	if len(args) == 0 {
		_ = cmd.Usage()
		return errNoVersion
	}
	version, command := args[0], args[1:]

	// Reject unknown versions before the store is opened
	if _, err := toolchain.Lookup(version); err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Prepare(&engine.PrepareRequest{Version: version, SDK: sdk, Force: forceRun})
	reportVerdict(result, err)
	if err != nil {
		return err
	}

	if verbose {
		printDetected(result)
	}

	if len(command) > 0 {
		return eng.Start(context.Background(), result.Plan, command)
	}

	if jsonOutput {
		return outputJSON(result.Plan)
	}
	fmt.Fprintln(stdout, result.Plan.String())
	return nil
}

// leadingArgs consumes the fx tokens and flags that come before VERSION in
// any order, as in "vcenv fx -v 80". Flag parsing stops at the first other
// argument, so flags after VERSION still belong to the command.
func leadingArgs(cmd *cobra.Command, args []string) (bool, []string, error) {
	fx := false
	for len(args) > 0 {
		switch {
		case args[0] == toolchain.OptionSDK:
			fx = true
			args = args[1:]
		case len(args[0]) > 1 && args[0][0] == '-':
			if err := cmd.Flags().Parse(args); err != nil {
				return false, nil, err
			}
			args = cmd.Flags().Args()
		default:
			return fx, args, nil
		}
	}
	return fx, args, nil
}

// stripSDKToken removes legacy fx tokens from positional arguments.
func stripSDKToken(args []string) (bool, []string) {
	fx := false
	rest := make([]string, 0, len(args))
	for _, a := range args {
		if a == toolchain.OptionSDK {
			fx = true
			continue
		}
		rest = append(rest, a)
	}
	return fx, rest
}

// optionalVersion accepts at most one VERSION besides fx tokens.
func optionalVersion(cmd *cobra.Command, args []string) error {
	if _, rest := stripSDKToken(args); len(rest) > 1 {
		return fmt.Errorf("accepts at most 1 VERSION, received %d", len(rest))
	}
	return nil
}

// reportVerdict prints the outdated diagnostic on stderr, where build log
// parsers see it without it mixing into the NAME=value output.
func reportVerdict(result *engine.PrepareResult, err error) {
	if result == nil || result.Verdict.Status != toolchain.StatusOutdated {
		return
	}
	fmt.Fprintln(stderr, result.Verdict.Diagnostic)
	if errors.Is(err, toolchain.ErrOutdated) {
		PrintError("Please install the latest service pack or use option '-f'")
	}
}

func printDetected(result *engine.PrepareResult) {
	PrintInfo(banner)
	PrintInfo("Detected: " + result.Verdict.Product)
	if debugOutput {
		PrintLabelValue("Edition", result.Resolution.Edition.Variant)
	}
	if result.Plan.HasConflicts() {
		PrintWarning("The environment already contains parts of this toolchain:")
		items := make([]string, 0, len(result.Plan.Conflicts()))
		for _, c := range result.Plan.Conflicts() {
			items = append(items, c.Name+": "+c.Segment)
		}
		PrintList(items, 1)
	}
}

// customHelpFunc returns a custom help function that colors group titles
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	for _, group := range cmd.Groups() {
		help.WriteString(groupTitleColor.Sprint(group.Title))
		help.WriteString("\n")

		for _, c := range cmd.Commands() {
			if c.GroupID == group.ID && !c.Hidden {
				fmt.Fprintf(&help, "  %-11s %s\n", c.Name(), c.Short)
			}
		}
		help.WriteString("\n")
	}

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
		help.WriteString("\n")
	}

	fmt.Fprintf(&help, "Use \"%s [command] --help\" for more information about a command.\n", cmd.Root().Name())

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

func init() {
	rootCmd.SetHelpFunc(customHelpFunc)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storeFile, "store", "", "Read a registry snapshot (.yaml or .toml) instead of the live registry")
	rootCmd.PersistentFlags().BoolVar(&debugOutput, "debug", false, "Trace registry lookups on stderr")

	// -v must be taken before cobra adds its own --version shorthand
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the banner and the detected compiler version")
	rootCmd.Flags().BoolVarP(&forceRun, "force", "f", false, "Proceed even without the latest service pack")
	rootCmd.Flags().BoolVarP(&useSDK, "sdk", "x", false, "Use the Windows SDK (formerly WinFX); same as a leading 'fx'")

	// Everything after VERSION belongs to the command
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "environment",
		Title: "Environment:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "cli-tooling",
		Title: "CLI & Tooling:",
	})

	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the vcenv CLI version",
		Args:    cobra.NoArgs,
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	helpCmd := &cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: "cli-tooling",
		Run: func(cmd *cobra.Command, args []string) {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				target = cmd.Root()
			}
			_ = target.Help()
		},
	}
	rootCmd.SetHelpCommand(helpCmd)

	completionCmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: "cli-tooling",
		Long: `Generate the autocompletion script for vcenv for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "bash",
		Short:                 "Generate the autocompletion script for bash",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenBashCompletion(stdout)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "zsh",
		Short:                 "Generate the autocompletion script for zsh",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenZshCompletion(stdout)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "fish",
		Short:                 "Generate the autocompletion script for fish",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenFishCompletion(stdout, true)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "powershell",
		Short:                 "Generate the autocompletion script for powershell",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenPowerShellCompletionWithDesc(stdout)
		},
	})
	rootCmd.AddCommand(completionCmd)

	configCmd.GroupID = "cli-tooling"
	rootCmd.AddCommand(configCmd)

	listCmd.GroupID = "environment"
	checkCmd.GroupID = "environment"
	scriptCmd.GroupID = "environment"
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scriptCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
