package planner

import (
	"fmt"
	"strings"
)

// Shell selects the script dialect produced by Render.
type Shell string

const (
	ShellCmd        Shell = "cmd"
	ShellPowerShell Shell = "powershell"
	ShellSh         Shell = "sh"
)

// Shells lists the supported dialects.
var Shells = []Shell{ShellCmd, ShellPowerShell, ShellSh}

// ParseShell validates a dialect name.
func ParseShell(name string) (Shell, error) {
	for _, s := range Shells {
		if string(s) == strings.ToLower(name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unsupported shell %q (want cmd, powershell or sh)", name)
}

// Render writes the plan as a script that reproduces it when sourced.
// Appended variables refer to the variable itself at the point the script
// runs instead of embedding the captured original value.
func Render(p *EnvironmentPlan, shell Shell) ([]byte, error) {
	var b strings.Builder
	nl := "\n"

	switch shell {
	case ShellCmd:
		nl = "\r\n"
		b.WriteString("@echo off" + nl)
	case ShellPowerShell, ShellSh:
	default:
		return nil, fmt.Errorf("unsupported shell %q", shell)
	}

	fmt.Fprintf(&b, "%s vcenv %s (%s)%s", commentPrefix(shell), p.Version, p.Edition, nl)
	for _, a := range p.assignments {
		b.WriteString(renderAssignment(shell, a))
		b.WriteString(nl)
	}
	return []byte(b.String()), nil
}

func commentPrefix(shell Shell) string {
	if shell == ShellCmd {
		return "rem"
	}
	return "#"
}

func renderAssignment(shell Shell, a Assignment) string {
	prefix, self := a.Value, false
	if a.Appended {
		prefix, self = strings.TrimSuffix(a.Value, a.Original), true
	}

	switch shell {
	case ShellCmd:
		v := strings.ReplaceAll(prefix, "%", "%%")
		if self {
			v += "%" + a.Name + "%"
		}
		return fmt.Sprintf(`set "%s=%s"`, a.Name, v)
	case ShellPowerShell:
		v := "'" + strings.ReplaceAll(prefix, "'", "''") + "'"
		if self {
			v += " + $env:" + a.Name
		}
		return fmt.Sprintf("$env:%s = %s", a.Name, v)
	default:
		v := "'" + strings.ReplaceAll(prefix, "'", `'\''`) + "'"
		if self {
			v += `"${` + a.Name + `}"`
		}
		return fmt.Sprintf("export %s=%s", a.Name, v)
	}
}
