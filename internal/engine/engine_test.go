package engine

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/vcenv/internal/config"
	"github.com/danieljhkim/vcenv/internal/planner"
	"github.com/danieljhkim/vcenv/internal/regstore"
	"github.com/danieljhkim/vcenv/internal/runner"
	"github.com/danieljhkim/vcenv/internal/toolchain"
)

const originalPath = `C:\WINDOWS\system32;C:\WINDOWS`

func TestPrepare_UnknownVersionBeforeStoreAccess(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), nil, nil)

	result, err := te.Prepare(&PrepareRequest{Version: "99"})
	if !errors.Is(err, toolchain.ErrUnknownVersion) {
		t.Fatalf("Prepare error = %v, want ErrUnknownVersion", err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}
	if te.store.calls != 0 {
		t.Errorf("store consulted %d times", te.store.calls)
	}
}

func TestPrepare_PathMatchesDeclaredOrder(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), map[string]string{"Path": originalPath}, nil)

	result, err := te.Prepare(&PrepareRequest{Version: "80"})
	if err != nil {
		t.Fatalf("Prepare error = %v", err)
	}

	want := strings.Join([]string{
		`C:\VS8\Common7\IDE`,
		`C:\VS8\VC\bin`,
		`C:\VS8\VC\platformSDK\bin`,
		`C:\VS8\VC\vcpackages`,
		`C:\VS8\Common7\tools`,
		`C:\VS8\Common7\tools\bin`,
		`C:\VS8\SDK\v2.0\bin`,
		`C:\WINDOWS\Microsoft.NET\Framework\v2.0.50727`,
		originalPath,
	}, ";")
	if got, _ := result.Plan.Value("PATH"); got != want {
		t.Errorf("PATH =\n  %s\nwant\n  %s", got, want)
	}
	if !result.Verdict.OK() {
		t.Errorf("Verdict = %v", result.Verdict.Status)
	}
	if result.Verdict.Product != "Visual C++ 8.0 SP 1" {
		t.Errorf("Product = %q", result.Verdict.Product)
	}

	// Prepare has no side effects
	if v, _ := te.env.Lookup("PATH"); v != originalPath {
		t.Errorf("environment modified by Prepare: %q", v)
	}
}

func TestPrepare_Outdated(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 0), nil, nil)

	result, err := te.Prepare(&PrepareRequest{Version: "80"})
	var od *toolchain.OutdatedError
	if !errors.As(err, &od) {
		t.Fatalf("Prepare error = %v, want *OutdatedError", err)
	}
	if od.Current != 0 || od.Required != 1 {
		t.Errorf("levels = %d/%d, want 0/1", od.Current, od.Required)
	}
	if result == nil || result.Plan == nil {
		t.Fatal("outdated result should still carry the plan")
	}
	if !strings.HasPrefix(result.Verdict.Diagnostic, `C:\VS8\VC\install.htm(1) : warning SP: `) {
		t.Errorf("Diagnostic = %q", result.Verdict.Diagnostic)
	}

	if _, err := te.Prepare(&PrepareRequest{Version: "80", Force: true}); err != nil {
		t.Errorf("forced Prepare error = %v", err)
	}
}

func TestPrepare_NotInstalled(t *testing.T) {
	te := newTestEngine(regstore.NewMemStore(), nil, nil)

	result, err := te.Prepare(&PrepareRequest{Version: "71"})
	var mf *toolchain.MissingFragmentError
	if !errors.As(err, &mf) || mf.Role != toolchain.RoleProduct {
		t.Fatalf("Prepare error = %v, want missing product", err)
	}
	if result.Verdict.Status != toolchain.StatusNotFound {
		t.Errorf("Verdict = %v, want not found", result.Verdict.Status)
	}
	if result.Plan != nil {
		t.Error("no plan expected for a missing installation")
	}
}

func TestPrepare_UnsupportedOption(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), nil, nil)

	_, err := te.Prepare(&PrepareRequest{Version: "71", SDK: true})
	if !errors.Is(err, toolchain.ErrUnsupportedOption) {
		t.Fatalf("Prepare error = %v, want ErrUnsupportedOption", err)
	}
	if te.store.calls != 0 {
		t.Errorf("store consulted %d times", te.store.calls)
	}
}

func TestPrepare_SDK(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), nil, nil)

	result, err := te.Prepare(&PrepareRequest{Version: "8.0", SDK: true})
	if err != nil {
		t.Fatalf("Prepare error = %v", err)
	}
	if got, _ := result.Plan.Value("MSSdk"); got != `C:\Program Files\Microsoft SDKs\Windows\v6.0` {
		t.Errorf("MSSdk = %q", got)
	}
}

func TestPrepare_DefaultVersionAndMinimumFromConfig(t *testing.T) {
	cfg := &config.Config{
		DefaultVersion:     "80",
		MinimumUpdateLevel: map[string]uint32{"8.0": 2},
	}
	te := newTestEngine(vs2005Store(t, 1), nil, cfg)

	result, err := te.Prepare(&PrepareRequest{})
	if !errors.Is(err, toolchain.ErrOutdated) {
		t.Fatalf("Prepare error = %v, want ErrOutdated", err)
	}
	if result.Profile.Version != "80" || result.Verdict.Required != 2 {
		t.Errorf("profile %s required %d", result.Profile.Version, result.Verdict.Required)
	}
}

func TestPrepare_NoVersion(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), nil, nil)
	if _, err := te.Prepare(&PrepareRequest{}); !errors.Is(err, ErrNoVersion) {
		t.Errorf("Prepare error = %v, want ErrNoVersion", err)
	}
}

func TestApply(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), map[string]string{"Path": originalPath}, nil)

	result, err := te.Prepare(&PrepareRequest{Version: "80"})
	if err != nil {
		t.Fatalf("Prepare error = %v", err)
	}
	if err := te.Apply(result.Plan); err != nil {
		t.Fatalf("Apply error = %v", err)
	}

	for _, a := range result.Plan.Assignments() {
		if got, _ := te.env.Lookup(a.Name); got != a.Value {
			t.Errorf("%s = %q, want %q", a.Name, got, a.Value)
		}
	}

	// A second composition from the applied environment reports the
	// duplicates instead of silently stacking them.
	again, err := te.Prepare(&PrepareRequest{Version: "80"})
	if err != nil {
		t.Fatalf("second Prepare error = %v", err)
	}
	if !again.Plan.HasConflicts() {
		t.Error("expected conflicts after applying twice")
	}
}

func TestRun(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), map[string]string{"PATH": originalPath}, nil)

	_, err := te.Run(context.Background(), &RunRequest{
		PrepareRequest: PrepareRequest{Version: "80"},
		Command:        []string{"cl.exe", "/nologo", "hello.c"},
	})
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if !te.runner.called || te.runner.name != "cl.exe" {
		t.Fatalf("runner called=%v name=%q", te.runner.called, te.runner.name)
	}
	if strings.Join(te.runner.args, " ") != "/nologo hello.c" {
		t.Errorf("args = %v", te.runner.args)
	}

	found := false
	for _, kv := range te.runner.env {
		if kv == "VC_VERS=80" {
			found = true
		}
	}
	if !found {
		t.Errorf("child environment lacks VC_VERS=80: %v", te.runner.env)
	}
}

func TestRun_OutdatedDoesNotStart(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 0), map[string]string{"PATH": originalPath}, nil)

	_, err := te.Run(context.Background(), &RunRequest{
		PrepareRequest: PrepareRequest{Version: "80"},
		Command:        []string{"nmake"},
	})
	if !errors.Is(err, toolchain.ErrOutdated) {
		t.Fatalf("Run error = %v, want ErrOutdated", err)
	}
	if te.runner.called {
		t.Error("command started for an outdated installation")
	}
	if v, _ := te.env.Lookup("PATH"); v != originalPath {
		t.Errorf("environment modified: %q", v)
	}
}

func TestRun_PropagatesExitCode(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), nil, nil)
	te.runner.err = &runner.ExitError{Name: "nmake", Code: 2}

	_, err := te.Run(context.Background(), &RunRequest{
		PrepareRequest: PrepareRequest{Version: "80"},
		Command:        []string{"nmake"},
	})
	var exitErr *runner.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Errorf("Run error = %v, want exit code 2", err)
	}
}

func TestRun_NoCommand(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), nil, nil)
	if _, err := te.Run(context.Background(), &RunRequest{PrepareRequest: PrepareRequest{Version: "80"}}); !errors.Is(err, ErrNoCommand) {
		t.Errorf("Run error = %v, want ErrNoCommand", err)
	}
}

func TestCheck(t *testing.T) {
	t.Run("current", func(t *testing.T) {
		te := newTestEngine(vs2005Store(t, 1), nil, nil)
		result, err := te.Check(&CheckRequest{Version: "80"})
		if err != nil {
			t.Fatalf("Check error = %v", err)
		}
		if result.Verdict.Status != toolchain.StatusCurrent {
			t.Errorf("Status = %v", result.Verdict.Status)
		}
	})

	t.Run("not installed is a verdict", func(t *testing.T) {
		te := newTestEngine(regstore.NewMemStore(), nil, nil)
		result, err := te.Check(&CheckRequest{Version: "60"})
		if err != nil {
			t.Fatalf("Check error = %v", err)
		}
		if result.Verdict.Status != toolchain.StatusNotFound || result.Resolution != nil {
			t.Errorf("Status = %v", result.Verdict.Status)
		}
	})

	t.Run("missing mandatory fragment keeps its role", func(t *testing.T) {
		store, err := regstore.DecodeSnapshot([]byte(vs2003WithoutFramework), regstore.FormatYAML)
		if err != nil {
			t.Fatalf("DecodeSnapshot error = %v", err)
		}
		te := newTestEngine(store, nil, nil)

		result, err := te.Check(&CheckRequest{Version: "71"})
		if err != nil {
			t.Fatalf("Check error = %v", err)
		}
		v := result.Verdict
		if v.Status != toolchain.StatusIncomplete {
			t.Errorf("Status = %v, want incomplete", v.Status)
		}
		if strings.Contains(v.Diagnostic, "installation not found") || !strings.Contains(v.Diagnostic, "clr_root") {
			t.Errorf("Diagnostic = %q", v.Diagnostic)
		}

		var mf *toolchain.MissingFragmentError
		if !errors.As(v.Err(), &mf) || mf.Role != toolchain.RoleCLRRoot {
			t.Fatalf("Err() = %v, want missing clr_root", v.Err())
		}
		if !errors.Is(v.Err(), regstore.ErrNotFound) {
			t.Errorf("Err() should wrap the store failure: %v", v.Err())
		}

		// Prepare reports the same verdict alongside the error
		prepared, err := te.Prepare(&PrepareRequest{Version: "71"})
		if !errors.As(err, &mf) || mf.Role != toolchain.RoleCLRRoot {
			t.Errorf("Prepare error = %v, want missing clr_root", err)
		}
		if prepared.Verdict.Status != toolchain.StatusIncomplete {
			t.Errorf("Prepare verdict = %v", prepared.Verdict.Status)
		}
	})

	t.Run("missing root is not found", func(t *testing.T) {
		te := newTestEngine(regstore.NewMemStore(), nil, nil)
		result, err := te.Check(&CheckRequest{Version: "71"})
		if err != nil {
			t.Fatalf("Check error = %v", err)
		}
		var mf *toolchain.MissingFragmentError
		if !errors.As(result.Verdict.Err(), &mf) || mf.Role != toolchain.RoleProduct {
			t.Errorf("Err() = %v, want missing product", result.Verdict.Err())
		}
	})

	t.Run("wrong type is an error", func(t *testing.T) {
		store := vs2005Store(t, 1)
		store.SetInt(regstore.MustParsePath(`HKLM\SOFTWARE\Microsoft\VisualStudio\8.0\Setup\VC`), "ProductDir", 1)
		te := newTestEngine(store, nil, nil)
		if _, err := te.Check(&CheckRequest{Version: "80"}); !errors.Is(err, regstore.ErrWrongType) {
			t.Errorf("Check error = %v, want ErrWrongType", err)
		}
	})
}

func TestWriteScript(t *testing.T) {
	te := newTestEngine(vs2005Store(t, 1), nil, nil)

	t.Run("to scripts directory", func(t *testing.T) {
		result, err := te.WriteScript(&ScriptRequest{
			PrepareRequest: PrepareRequest{Version: "80"},
			Shell:          planner.ShellCmd,
			ToDir:          true,
		})
		if err != nil {
			t.Fatalf("WriteScript error = %v", err)
		}
		want := filepath.Join("vcenv-root", "scripts", "vc80.cmd")
		if result.Path != want {
			t.Errorf("Path = %q, want %q", result.Path, want)
		}
		data, err := te.fs.ReadFile(want)
		if err != nil {
			t.Fatalf("ReadFile error = %v", err)
		}
		if !strings.Contains(string(data), `set "PATH=C:\VS8\Common7\IDE;`) {
			t.Errorf("script = %s", data)
		}
	})

	t.Run("explicit output", func(t *testing.T) {
		result, err := te.WriteScript(&ScriptRequest{
			PrepareRequest: PrepareRequest{Version: "80"},
			Shell:          planner.ShellPowerShell,
			Output:         filepath.Join("out", "env.ps1"),
		})
		if err != nil {
			t.Fatalf("WriteScript error = %v", err)
		}
		if ok, _ := te.fs.Exists(result.Path); !ok {
			t.Error("script not written")
		}
	})

	t.Run("stdout only", func(t *testing.T) {
		result, err := te.WriteScript(&ScriptRequest{
			PrepareRequest: PrepareRequest{Version: "80"},
			Shell:          planner.ShellSh,
		})
		if err != nil {
			t.Fatalf("WriteScript error = %v", err)
		}
		if result.Path != "" || len(result.Script) == 0 {
			t.Errorf("Path = %q, script %d bytes", result.Path, len(result.Script))
		}
	})

	t.Run("unknown shell", func(t *testing.T) {
		_, err := te.WriteScript(&ScriptRequest{PrepareRequest: PrepareRequest{Version: "80"}, Shell: "fish"})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("WriteScript error = %v, want ErrValidation", err)
		}
	})
}

func TestProfiles(t *testing.T) {
	cfg := &config.Config{MinimumUpdateLevel: map[string]uint32{"60": 5}}
	te := newTestEngine(regstore.NewMemStore(), nil, cfg)

	infos := te.Profiles()
	if len(infos) != 3 {
		t.Fatalf("got %d profiles, want 3", len(infos))
	}
	if infos[0].Version != "60" || infos[0].Minimum != 5 {
		t.Errorf("60 = %+v", infos[0])
	}
	if !infos[2].SupportsSDK || len(infos[2].Editions) != 2 {
		t.Errorf("80 = %+v", infos[2])
	}
	if te.store.calls != 0 {
		t.Error("listing profiles should not read the store")
	}
}
