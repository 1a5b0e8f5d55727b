// Package condition implements the gating predicates described in
// spec.md section 4.7: pure, side-effect-safe combinators evaluated
// repeatedly to decide whether a Conditional action/atom should run.
package condition

import (
	"context"
	"os"
	"time"

	"github.com/korora-tech/dhd/platform"
)

// Condition evaluates to true or false against the current host state. An
// implementation must be safe to call repeatedly without side effects
// beyond read-only filesystem probes or dry subprocess calls.
type Condition interface {
	Evaluate(ctx context.Context) (bool, error)
	Describe() string
}

// FileExists is true when path names a regular file (or any non-directory
// entry).
type FileExists struct{ Path string }

func (c FileExists) Evaluate(context.Context) (bool, error) {
	info, err := os.Stat(c.Path)
	if err != nil {
		return false, nil
	}
	return !info.IsDir(), nil
}

func (c FileExists) Describe() string { return "file exists: " + c.Path }

// DirectoryExists is true when path names a directory.
type DirectoryExists struct{ Path string }

func (c DirectoryExists) Evaluate(context.Context) (bool, error) {
	info, err := os.Stat(c.Path)
	if err != nil {
		return false, nil
	}
	return info.IsDir(), nil
}

func (c DirectoryExists) Describe() string { return "directory exists: " + c.Path }

// CommandSucceeds is true when running Command (via a shell) exits zero.
// The command is invoked as a dry read-only probe; it is the condition
// author's responsibility to pass a side-effect-free command.
type CommandSucceeds struct {
	Command string
	Timeout time.Duration
}

func (c CommandSucceeds) Evaluate(ctx context.Context) (bool, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	_, err := platform.InvokeProgram(ctx, nil, timeout, "/bin/sh", "-c", c.Command)
	return err == nil, nil
}

func (c CommandSucceeds) Describe() string { return "command succeeds: " + c.Command }

// EnvVar is true when the named environment variable is set, and, if
// Expected is non-empty, equal to Expected.
type EnvVar struct {
	Name     string
	Expected string
}

func (c EnvVar) Evaluate(context.Context) (bool, error) {
	val, ok := os.LookupEnv(c.Name)
	if !ok {
		return false, nil
	}
	if c.Expected == "" {
		return true, nil
	}
	return val == c.Expected, nil
}

func (c EnvVar) Describe() string { return "env var set: " + c.Name }

// AllOf is true when every inner condition is true (short-circuits on the
// first false or error).
type AllOf struct{ Conditions []Condition }

func (c AllOf) Evaluate(ctx context.Context) (bool, error) {
	for _, inner := range c.Conditions {
		ok, err := inner.Evaluate(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (c AllOf) Describe() string { return "all of" }

// AnyOf is true when at least one inner condition is true (short-circuits
// on the first true).
type AnyOf struct{ Conditions []Condition }

func (c AnyOf) Evaluate(ctx context.Context) (bool, error) {
	for _, inner := range c.Conditions {
		ok, err := inner.Evaluate(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (c AnyOf) Describe() string { return "any of" }

// Not inverts the inner condition.
type Not struct{ Condition Condition }

func (c Not) Evaluate(ctx context.Context) (bool, error) {
	ok, err := c.Condition.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (c Not) Describe() string { return "not (" + c.Condition.Describe() + ")" }
