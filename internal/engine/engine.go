// Package engine provides the orchestration layer of vcenv.
//
// The engine sits between the CLI and the lower-level packages. It selects a
// profile, resolves it against the configuration store, checks the update
// level, composes the environment plan and, only when all of that has
// succeeded, applies the plan and starts the requested command.
//
// Key components:
//   - Engine: Main orchestrator called by the CLI
//   - Prepare: Resolve, check and compose without side effects
//   - Apply/Run: Commit a plan to the environment and start a child
//   - WriteScript: Render a plan for a shell
package engine

import (
	"io"
	"log"

	"github.com/danieljhkim/vcenv/internal/config"
	"github.com/danieljhkim/vcenv/internal/envops"
	"github.com/danieljhkim/vcenv/internal/fsops"
	"github.com/danieljhkim/vcenv/internal/regstore"
	"github.com/danieljhkim/vcenv/internal/runner"
	"github.com/danieljhkim/vcenv/internal/toolchain"
)

// Engine orchestrates all vcenv operations.
// It is the main API surface called by the CLI.
type Engine struct {
	store  regstore.Reader
	env    envops.Env
	fs     fsops.FS
	runner runner.Runner
	cfg    *config.Config
	paths  config.Paths
	logger *log.Logger
}

// New creates a new Engine with the given dependencies. A nil cfg is an
// empty configuration; a nil logger discards trace output.
func New(
	store regstore.Reader,
	env envops.Env,
	fs fsops.FS,
	run runner.Runner,
	cfg *config.Config,
	paths config.Paths,
	logger *log.Logger,
) *Engine {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		store:  store,
		env:    env,
		fs:     fs,
		runner: run,
		cfg:    cfg,
		paths:  paths,
		logger: logger,
	}
}

// profile looks up a version token and applies the configured minimum
// update level. An empty token falls back to the configured default.
func (e *Engine) profile(token string) (*toolchain.Profile, error) {
	if token == "" {
		token = e.cfg.DefaultVersion
	}
	if token == "" {
		return nil, ErrNoVersion
	}

	p, err := toolchain.Lookup(token)
	if err != nil {
		return nil, err
	}
	for _, t := range p.Tokens() {
		if level, ok := e.cfg.Minimum(t); ok {
			e.logger.Printf("%s: minimum update level %d from config", p.Version, level)
			return p.WithMinimum(level), nil
		}
	}
	return p, nil
}

func (e *Engine) resolver() *toolchain.Resolver {
	return toolchain.NewResolver(e.store, e.logger)
}
