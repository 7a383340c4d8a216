// Package envops provides access to the process environment.
//
// All environment mutations in vcenv go through the Env interface so that
// planning and applying can be tested against an in-memory environment.
// Variable names are case-insensitive on Windows; MemEnv can mimic that.
package envops

import (
	"os"
	"sort"
	"strings"
)

// Env provides an abstraction over the process environment.
type Env interface {
	// Lookup returns the value of a variable and whether it is set.
	Lookup(name string) (string, bool)

	// Set assigns a variable.
	Set(name, value string) error

	// Environ returns the environment as NAME=value pairs.
	Environ() []string
}

// Snapshot is an immutable copy of selected variables taken before any
// assignment is applied. Unset variables are absent.
type Snapshot map[string]string

// Capture copies the named variables from env.
func Capture(env Env, names ...string) Snapshot {
	snap := make(Snapshot, len(names))
	for _, name := range names {
		if v, ok := env.Lookup(name); ok {
			snap[name] = v
		}
	}
	return snap
}

// RealEnv implements Env using the process environment.
type RealEnv struct{}

// NewRealEnv creates a new RealEnv.
func NewRealEnv() *RealEnv {
	return &RealEnv{}
}

// Lookup returns the value of a process environment variable.
func (e *RealEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Set assigns a process environment variable.
func (e *RealEnv) Set(name, value string) error {
	return os.Setenv(name, value)
}

// Environ returns the process environment.
func (e *RealEnv) Environ() []string {
	return os.Environ()
}

// MemEnv implements Env in memory.
type MemEnv struct {
	vars            map[string]memVar
	caseInsensitive bool
}

type memVar struct {
	name  string
	value string
}

// NewMemEnv creates an in-memory environment seeded with vars. When
// caseInsensitive is set, names match regardless of case as on Windows.
func NewMemEnv(vars map[string]string, caseInsensitive bool) *MemEnv {
	e := &MemEnv{vars: make(map[string]memVar), caseInsensitive: caseInsensitive}
	for k, v := range vars {
		_ = e.Set(k, v)
	}
	return e
}

// Lookup returns the value of a variable.
func (e *MemEnv) Lookup(name string) (string, bool) {
	v, ok := e.vars[e.key(name)]
	return v.value, ok
}

// Set assigns a variable, keeping the spelling of an existing name.
func (e *MemEnv) Set(name, value string) error {
	k := e.key(name)
	if existing, ok := e.vars[k]; ok {
		name = existing.name
	}
	e.vars[k] = memVar{name: name, value: value}
	return nil
}

// Environ returns NAME=value pairs sorted by name.
func (e *MemEnv) Environ() []string {
	out := make([]string, 0, len(e.vars))
	for _, v := range e.vars {
		out = append(out, v.name+"="+v.value)
	}
	sort.Strings(out)
	return out
}

func (e *MemEnv) key(name string) string {
	if e.caseInsensitive {
		return strings.ToUpper(name)
	}
	return name
}
