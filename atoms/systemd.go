package atoms

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/korora-tech/dhd/errs"
	"github.com/korora-tech/dhd/platform"
)

const systemdTimeout = 30 * time.Second

// SystemdUnit writes a unit file's Content to Path (user or system scope,
// chosen by the caller) and reloads the daemon when it changes. check()
// compares existing file content byte-for-byte.
type SystemdUnit struct {
	base
	Path    string
	Content string
	Scope   string // "user" or "system"
}

func NewSystemdUnit(module, path, content, scope string) *SystemdUnit {
	return &SystemdUnit{
		base:    newBase(module, "systemd unit "+path, nil),
		Path:    path,
		Content: content,
		Scope:   scope,
	}
}

func (a *SystemdUnit) Resource() string { return "systemd:" + a.Scope }

func (a *SystemdUnit) Check(ctx context.Context) (bool, error) {
	existing, err := os.ReadFile(a.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errs.Wrap(errs.ErrIO, "reading "+a.Path, err)
	}
	return string(existing) == a.Content, nil
}

func (a *SystemdUnit) Execute(ctx context.Context) error {
	if a.Scope == "system" {
		return a.executeElevated(ctx)
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		return errs.Wrap(errs.ErrIO, "creating parent directory for "+a.Path, err)
	}
	if err := os.WriteFile(a.Path, []byte(a.Content), 0o644); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "writing "+a.Path, err)
	}
	if _, err := platform.InvokeProgram(ctx, nil, systemdTimeout, "systemctl", "daemon-reload"); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "systemctl daemon-reload", err)
	}
	return nil
}

// executeElevated writes the unit file and reloads the daemon through the
// escalator, since system-scope units live under /etc and plain os.WriteFile
// cannot gain the privilege a raw Execute call doesn't have. The content is
// staged in a caller-writable temp file first, then moved into place and
// reloaded via a single escalated shell invocation.
func (a *SystemdUnit) executeElevated(ctx context.Context) error {
	tmp, err := os.CreateTemp("", "dhd-systemd-unit-*")
	if err != nil {
		return errs.Wrap(errs.ErrIO, "creating temp unit file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.WriteString(a.Content); err != nil {
		tmp.Close()
		return errs.Wrap(errs.ErrIO, "writing temp unit file", err)
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(errs.ErrIO, "closing temp unit file", err)
	}

	shellCmd := "mkdir -p " + shellQuote(filepath.Dir(a.Path)) +
		" && cp " + shellQuote(tmpPath) + " " + shellQuote(a.Path) +
		" && chmod 644 " + shellQuote(a.Path) +
		" && systemctl daemon-reload"
	if _, err := platform.InvokeElevated(ctx, nil, systemdTimeout, "/bin/sh", "-c", shellCmd); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "writing system unit "+a.Path, err)
	}
	return nil
}

// SystemdManage enables/starts or disables/stops a unit within Scope.
// check() inspects `systemctl is-enabled`/`is-active` against the desired
// Enabled/Active state.
type SystemdManage struct {
	base
	Unit   string
	Scope  string
	Enable bool
	Active bool
}

func NewSystemdManage(module, unit, scope string, enable, active bool) *SystemdManage {
	return &SystemdManage{
		base:   newBase(module, "systemd manage "+unit, nil),
		Unit:   unit,
		Scope:  scope,
		Enable: enable,
		Active: active,
	}
}

func (a *SystemdManage) Resource() string { return "systemd:" + a.Scope }

func (a *SystemdManage) scopeArgs() []string {
	if a.Scope == "user" {
		return []string{"--user"}
	}
	return nil
}

func (a *SystemdManage) Check(ctx context.Context) (bool, error) {
	enabledOut, _ := platform.InvokeProgram(ctx, nil, systemdTimeout, "systemctl", append(a.scopeArgs(), "is-enabled", a.Unit)...)
	isEnabled := strings.TrimSpace(enabledOut) == "enabled"
	if isEnabled != a.Enable {
		return false, nil
	}
	activeOut, _ := platform.InvokeProgram(ctx, nil, systemdTimeout, "systemctl", append(a.scopeArgs(), "is-active", a.Unit)...)
	isActive := strings.TrimSpace(activeOut) == "active"
	return isActive == a.Active, nil
}

func (a *SystemdManage) invoke() func(ctx context.Context, envVars []string, timeout time.Duration, program string, args ...string) (string, error) {
	if a.Scope == "system" {
		return platform.InvokeElevated
	}
	return platform.InvokeProgram
}

func (a *SystemdManage) Execute(ctx context.Context) error {
	invoke := a.invoke()
	verb := "disable"
	if a.Enable {
		verb = "enable"
	}
	if _, err := invoke(ctx, nil, systemdTimeout, "systemctl", append(a.scopeArgs(), verb, a.Unit)...); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "systemctl "+verb+" "+a.Unit, err)
	}
	activeVerb := "stop"
	if a.Active {
		activeVerb = "start"
	}
	if _, err := invoke(ctx, nil, systemdTimeout, "systemctl", append(a.scopeArgs(), activeVerb, a.Unit)...); err != nil {
		return errs.Wrap(errs.ErrAtomExecution, "systemctl "+activeVerb+" "+a.Unit, err)
	}
	return nil
}
