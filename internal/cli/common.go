package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vcenv/internal/config"
	"github.com/danieljhkim/vcenv/internal/engine"
	"github.com/danieljhkim/vcenv/internal/envops"
	"github.com/danieljhkim/vcenv/internal/fsops"
	"github.com/danieljhkim/vcenv/internal/regstore"
	"github.com/danieljhkim/vcenv/internal/runner"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	fs := fsops.NewRealFS()
	cfg, err := config.Load(fs, paths.Config)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg.StoreSource(storeFile))
	if err != nil {
		return nil, err
	}

	var logger *log.Logger
	if debugOutput {
		logger = log.New(stderr, "vcenv: ", 0)
		if snap, ok := store.(*regstore.MemStore); ok {
			dumpSnapshot(logger, snap)
		}
	}

	return engine.New(store, envops.NewRealEnv(), fs, runner.NewExecRunner(), cfg, *paths, logger), nil
}

// openStore opens a snapshot file, or the live registry when path is empty.
func openStore(path string) (regstore.Reader, error) {
	if path != "" {
		return regstore.LoadSnapshot(path)
	}
	store, err := regstore.Open()
	if errors.Is(err, regstore.ErrUnsupported) {
		return nil, fmt.Errorf("%w; pass --store or set %s", err, config.EnvStore)
	}
	return store, err
}

// dumpSnapshot traces the keys of a loaded snapshot file.
func dumpSnapshot(logger *log.Logger, snap *regstore.MemStore) {
	keys := snap.Keys()
	logger.Printf("snapshot holds %d keys", len(keys))
	for _, k := range keys {
		logger.Printf("  %s", k)
	}
}

// setOutput routes the format helpers to the command's streams.
func setOutput(cmd *cobra.Command) {
	stdout = cmd.OutOrStdout()
	stderr = cmd.ErrOrStderr()
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ExitCode maps an error returned by Execute to the process exit code: 0
// for nil, the child's code for a child that exited non-zero, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// ReportError prints err unless it only carries a child's exit code.
func ReportError(err error) {
	if err == nil {
		return
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fmt.Fprintln(os.Stderr, formatError(err))
}
