package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/danieljhkim/vcenv/internal/config"
	"github.com/danieljhkim/vcenv/internal/envops"
	"github.com/danieljhkim/vcenv/internal/fsops"
	"github.com/danieljhkim/vcenv/internal/regstore"
)

// vs2005 is a registry snapshot of a Visual Studio 2005 machine with the
// Windows SDK installed.
const vs2005 = `
HKLM\SOFTWARE\Microsoft\VisualStudio\8.0:
  CLR Version: v2.0.50727
HKLM\SOFTWARE\Microsoft\VisualStudio\8.0\Setup\VC:
  ProductDir: 'C:\VS8\VC\'
HKLM\SOFTWARE\Microsoft\VisualStudio\8.0\Setup\VS:
  ProductDir: 'C:\VS8\'
  VS7CommonDir: 'C:\VS8\Common7\'
  EnvironmentDirectory: 'C:\VS8\Common7\IDE\'
HKLM\SOFTWARE\Microsoft\.NETFramework:
  InstallRoot: 'C:\WINDOWS\Microsoft.NET\Framework\'
  sdkInstallRootv2.0: 'C:\VS8\SDK\v2.0\'
HKLM\SOFTWARE\Microsoft\Microsoft SDKs\Windows:
  CurrentInstallFolder: 'C:\Program Files\Microsoft SDKs\Windows\v6.0\'
HKLM\SOFTWARE\Microsoft\DevDiv\VS\Servicing\8.0:
  SP: %d
`

// vs2003WithoutFramework is a Visual Studio .NET 2003 machine whose .NET
// Framework key is gone.
const vs2003WithoutFramework = `
HKLM\SOFTWARE\Microsoft\VisualStudio\7.1:
  InstallDir: 'C:\VS71\Common7\IDE\'
  CLR Version: v1.1.4322
HKLM\SOFTWARE\Microsoft\VisualStudio\7.1\Setup\VC:
  ProductDir: 'C:\VS71\Vc7\'
HKLM\SOFTWARE\Microsoft\VisualStudio\7.1\Setup\VS:
  ProductDir: 'C:\VS71\'
  VS7CommonDir: 'C:\VS71\Common7\'
  EnvironmentDirectory: 'C:\VS71\Common7\IDE\'
HKLM\SOFTWARE\Microsoft\VisualStudio\7.1\Setup\Servicing:
  CurrentSPLevel: 1
`

func vs2005Store(t *testing.T, sp uint32) *regstore.MemStore {
	t.Helper()
	store, err := regstore.DecodeSnapshot([]byte(fmt.Sprintf(vs2005, sp)), regstore.FormatYAML)
	if err != nil {
		t.Fatalf("DecodeSnapshot error = %v", err)
	}
	return store
}

// countingReader records how often the store is consulted.
type countingReader struct {
	regstore.Reader
	calls int
}

func (r *countingReader) ReadString(p regstore.Path, name string) (string, error) {
	r.calls++
	return r.Reader.ReadString(p, name)
}

func (r *countingReader) ReadInt(p regstore.Path, name string) (uint32, error) {
	r.calls++
	return r.Reader.ReadInt(p, name)
}

// fakeRunner records the command instead of starting it.
type fakeRunner struct {
	called bool
	env    []string
	name   string
	args   []string
	err    error
}

func (r *fakeRunner) Run(ctx context.Context, env []string, name string, args ...string) error {
	r.called = true
	r.env = env
	r.name = name
	r.args = args
	return r.err
}

type testEngine struct {
	*Engine
	store  *countingReader
	env    *envops.MemEnv
	fs     *fsops.MemFS
	runner *fakeRunner
}

func newTestEngine(store regstore.Reader, env map[string]string, cfg *config.Config) *testEngine {
	te := &testEngine{
		store:  &countingReader{Reader: store},
		env:    envops.NewMemEnv(env, true),
		fs:     fsops.NewMemFS(),
		runner: &fakeRunner{},
	}
	te.Engine = New(te.store, te.env, te.fs, te.runner, cfg, *config.PathsAt("vcenv-root"), nil)
	return te
}
