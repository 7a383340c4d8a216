package planner

import (
	"strings"
	"testing"
)

func scriptPlan() *EnvironmentPlan {
	plan := NewEnvironmentPlan("80", "Visual C++ 8.0")
	plan.add(Assignment{Name: "VCINSTALLDIR", Value: `C:\VS8\VC`})
	plan.add(Assignment{Name: "PATH", Value: `C:\VS8\VC\bin;C:\WINDOWS`, Original: `C:\WINDOWS`, Appended: true})
	plan.add(Assignment{Name: "ReferenceAssemblies", Value: `%ProgramFiles%\Bob's`})
	return plan
}

func TestRender(t *testing.T) {
	tests := []struct {
		shell Shell
		want  []string
	}{
		{
			shell: ShellCmd,
			want: []string{
				"@echo off",
				"rem vcenv 80 (Visual C++ 8.0)",
				`set "VCINSTALLDIR=C:\VS8\VC"`,
				`set "PATH=C:\VS8\VC\bin;%PATH%"`,
				`set "ReferenceAssemblies=%%ProgramFiles%%\Bob's"`,
			},
		},
		{
			shell: ShellPowerShell,
			want: []string{
				"# vcenv 80 (Visual C++ 8.0)",
				`$env:VCINSTALLDIR = 'C:\VS8\VC'`,
				`$env:PATH = 'C:\VS8\VC\bin;' + $env:PATH`,
				`$env:ReferenceAssemblies = '%ProgramFiles%\Bob''s'`,
			},
		},
		{
			shell: ShellSh,
			want: []string{
				"# vcenv 80 (Visual C++ 8.0)",
				`export VCINSTALLDIR='C:\VS8\VC'`,
				`export PATH='C:\VS8\VC\bin;'"${PATH}"`,
				`export ReferenceAssemblies='%ProgramFiles%\Bob'\''s'`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			out, err := Render(scriptPlan(), tt.shell)
			if err != nil {
				t.Fatalf("Render error = %v", err)
			}

			nl := "\n"
			if tt.shell == ShellCmd {
				nl = "\r\n"
			}
			want := strings.Join(tt.want, nl) + nl
			if string(out) != want {
				t.Errorf("Render() =\n%s\nwant\n%s", out, want)
			}
		})
	}
}

func TestRender_UnknownShell(t *testing.T) {
	if _, err := Render(scriptPlan(), Shell("fish")); err == nil {
		t.Error("expected error for unknown shell")
	}
}

func TestParseShell(t *testing.T) {
	for _, name := range []string{"cmd", "CMD", "powershell", "sh"} {
		if _, err := ParseShell(name); err != nil {
			t.Errorf("ParseShell(%q) error = %v", name, err)
		}
	}
	if _, err := ParseShell("bash"); err == nil {
		t.Error("ParseShell(bash) should fail")
	}
}
