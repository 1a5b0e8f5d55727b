package actions

import (
	"strings"
	"time"

	"github.com/korora-tech/dhd/atoms"
	"github.com/korora-tech/dhd/condition"
)

// ExecuteCommand runs Command (with Args appended, shell-joined) optionally
// inside Cwd with extra Env vars. Unless, when set, gates execution the
// same way RunCommand's Unless does.
type ExecuteCommand struct {
	Command  string
	Args     []string
	Cwd      string
	Env      map[string]string
	Elevated bool
	Unless   condition.Condition
	Timeout  time.Duration
}

func (a ExecuteCommand) Describe() string { return "execute " + a.Command }

func (a ExecuteCommand) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	full := a.Command
	if len(a.Args) > 0 {
		full = full + " " + strings.Join(a.Args, " ")
	}
	cmd := atoms.NewRunCommand(moduleID, full, a.Unless, a.Timeout, a.Elevated)
	cmd.Dir = a.Cwd
	cmd.Env = a.Env
	return []atoms.Atom{cmd}, nil
}
