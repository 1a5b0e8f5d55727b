package actions

import (
	"context"
	"strings"
	"time"

	"github.com/korora-tech/dhd/atoms"
	"github.com/korora-tech/dhd/platform"
)

// gitConfigMatches is true when `git config --global --get <key>` already
// equals value, making GitConfig's RunCommand atom idempotent.
type gitConfigMatches struct {
	Key   string
	Value string
}

func (c gitConfigMatches) Evaluate(ctx context.Context) (bool, error) {
	out, err := platform.InvokeProgram(ctx, nil, 10*time.Second, "git", "config", "--global", "--get", c.Key)
	if err != nil {
		return false, nil
	}
	return strings.TrimSpace(out) == c.Value, nil
}

func (c gitConfigMatches) Describe() string { return "git config " + c.Key + " == " + c.Value }

// UserGroup ensures User is a member of each listed Group, supplementing
// spec.md with the user/group management original_source carried but the
// distillation dropped (SPEC_FULL.md section 4).
type UserGroup struct {
	User   string
	Groups []string
}

func (a UserGroup) Describe() string { return "user " + a.User + " in groups" }

func (a UserGroup) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	result := make([]atoms.Atom, 0, len(a.Groups))
	for _, group := range a.Groups {
		result = append(result, atoms.NewUserInGroup(moduleID, a.User, group))
	}
	return result, nil
}

// GitConfig sets a global git config key to value, lowered to a RunCommand
// atom gated on the key already matching (SPEC_FULL.md section 4).
type GitConfig struct {
	Key   string
	Value string
}

func (a GitConfig) Describe() string { return "git config " + a.Key }

func (a GitConfig) Plan(moduleID, moduleDir string) ([]atoms.Atom, error) {
	unless := gitConfigMatches{Key: a.Key, Value: a.Value}
	command := "git config --global " + shellQuoteArg(a.Key) + " " + shellQuoteArg(a.Value)
	return []atoms.Atom{atoms.NewRunCommand(moduleID, command, unless, 0, false)}, nil
}

func shellQuoteArg(s string) string {
	quoted := "'"
	for _, r := range s {
		if r == '\'' {
			quoted += `'\''`
			continue
		}
		quoted += string(r)
	}
	return quoted + "'"
}
