package engine

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/vcenv/internal/planner"
)

var scriptExt = map[planner.Shell]string{
	planner.ShellCmd:        ".cmd",
	planner.ShellPowerShell: ".ps1",
	planner.ShellSh:         ".sh",
}

// WriteScript prepares the environment and renders it for a shell. The
// script is written atomically when an output location is requested.
func (e *Engine) WriteScript(req *ScriptRequest) (*ScriptResult, error) {
	if _, ok := scriptExt[req.Shell]; !ok {
		return nil, fmt.Errorf("%w: unsupported shell %q", ErrValidation, req.Shell)
	}

	prepared, err := e.Prepare(&req.PrepareRequest)
	if err != nil {
		return &ScriptResult{PrepareResult: prepared}, err
	}

	script, err := planner.Render(prepared.Plan, req.Shell)
	if err != nil {
		return nil, err
	}
	result := &ScriptResult{PrepareResult: prepared, Script: script}

	path := req.Output
	if path == "" && req.ToDir {
		if err := e.paths.EnsureDirectories(e.fs); err != nil {
			return result, err
		}
		path = filepath.Join(e.paths.Scripts, "vc"+prepared.Profile.Version+scriptExt[req.Shell])
	}
	if path == "" {
		return result, nil
	}

	if err := e.fs.AtomicWrite(path, script, 0644); err != nil {
		return result, fmt.Errorf("failed to write script: %w", err)
	}
	result.Path = path
	return result, nil
}
