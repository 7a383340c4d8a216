package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

// vs2005TOML is a registry snapshot of a Visual Studio 2005 machine.
const vs2005TOML = `
['HKLM\SOFTWARE\Microsoft\VisualStudio\8.0']
'CLR Version' = 'v2.0.50727'

['HKLM\SOFTWARE\Microsoft\VisualStudio\8.0\Setup\VC']
ProductDir = 'C:\VS8\VC\'

['HKLM\SOFTWARE\Microsoft\VisualStudio\8.0\Setup\VS']
ProductDir = 'C:\VS8\'
VS7CommonDir = 'C:\VS8\Common7\'
EnvironmentDirectory = 'C:\VS8\Common7\IDE\'

['HKLM\SOFTWARE\Microsoft\.NETFramework']
InstallRoot = 'C:\WINDOWS\Microsoft.NET\Framework\'
'sdkInstallRootv2.0' = 'C:\VS8\SDK\v2.0\'

['HKLM\SOFTWARE\Microsoft\Microsoft SDKs\Windows']
CurrentInstallFolder = 'C:\Program Files\Microsoft SDKs\Windows\v6.0\'

['HKLM\SOFTWARE\Microsoft\DevDiv\VS\Servicing\8.0']
SP = %d
`

// setupTestEnv points vcenv at a temporary root and a snapshot store with
// the given service pack level, and resets the command flags.
func setupTestEnv(t *testing.T, sp int) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("VCENV_ROOT", root)

	store := filepath.Join(root, "vs2005.toml")
	if err := os.WriteFile(store, []byte(fmt.Sprintf(vs2005TOML, sp)), 0644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	t.Setenv("VCENV_STORE", store)

	resetFlags()
	t.Cleanup(resetFlags)
	return root
}

func resetFlags() {
	jsonOutput, storeFile, debugOutput = false, "", false
	verbose, forceRun, useSDK = false, false, false
	checkForce, checkSDK = false, false
	scriptShell, scriptOutput, scriptSave, scriptForce, scriptSDK = "cmd", "", false, false, false
	configDefault, configStore, configMinimum = "", "", nil

	// cobra keeps --help and --version set between executions
	clearFlags(rootCmd)
	for _, cmd := range rootCmd.Commands() {
		clearFlags(cmd)
	}
}

func clearFlags(cmd *cobra.Command) {
	for _, name := range []string{"help", "version"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}
}

// execute runs rootCmd with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	stdout, stderr = &out, &errOut

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
