package atoms

import (
	"context"
	"strings"
	"time"

	"github.com/korora-tech/dhd/condition"
	"github.com/korora-tech/dhd/errs"
	"github.com/korora-tech/dhd/platform"
	"github.com/korora-tech/dhd/secrets"
)

// DefaultSecretResolver resolves op://, env://, and literal:// references
// found in RunCommand's Env map. Modules author secrets the same way they
// author any other env value; RunCommand resolves them at execute time so
// a plan never captures a secret's value.
var DefaultSecretResolver = secrets.NewResolver(secrets.OnePasswordProvider{})

func looksLikeSecretReference(s string) bool {
	return strings.HasPrefix(s, "op://") || strings.HasPrefix(s, "env://") || strings.HasPrefix(s, "literal://")
}

// RunCommand shells out to Command via /bin/sh -c. It has no inherent
// idempotency signal of its own: when Unless is set, check() evaluates that
// condition and reports it as "already done"; with no Unless, check() always
// reports false and the command runs on every apply, matching spec.md's
// "run_command has no default idempotency; authors opt in via unless".
type RunCommand struct {
	base
	Command  string
	Dir      string
	Env      map[string]string
	Unless   condition.Condition
	Timeout  time.Duration
	Elevated bool
}

func NewRunCommand(module, command string, unless condition.Condition, timeout time.Duration, elevated bool) *RunCommand {
	return &RunCommand{
		base:     newBase(module, "run command "+command, nil),
		Command:  command,
		Unless:   unless,
		Timeout:  timeout,
		Elevated: elevated,
	}
}

func (a *RunCommand) Check(ctx context.Context) (bool, error) {
	if a.Unless == nil {
		return false, nil
	}
	return a.Unless.Evaluate(ctx)
}

func (a *RunCommand) Execute(ctx context.Context) error {
	timeout := a.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	invoke := platform.InvokeProgram
	if a.Elevated {
		invoke = platform.InvokeElevated
	}
	shellCmd := a.Command
	if a.Dir != "" {
		shellCmd = "cd " + shellQuote(a.Dir) + " && " + shellCmd
	}
	var envVars []string
	for k, v := range a.Env {
		if looksLikeSecretReference(v) {
			resolved, err := DefaultSecretResolver.Resolve(ctx, v)
			if err != nil {
				return errs.Wrap(errs.ErrAtomExecution, "resolving secret for env var "+k, err)
			}
			v = resolved
		}
		envVars = append(envVars, k+"="+v)
	}
	if _, err := invoke(ctx, envVars, timeout, "/bin/sh", "-c", shellCmd); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "running command: "+a.Command, err)
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
