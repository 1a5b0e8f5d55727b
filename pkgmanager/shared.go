package pkgmanager

import (
	"context"
	"strings"
	"time"

	"github.com/korora-tech/dhd/platform"
)

// defaultTimeout bounds every package manager subprocess invocation.
const defaultTimeout = 5 * time.Minute

// runCmd shells out without escalation.
func runCmd(ctx context.Context, program string, args ...string) (string, error) {
	return platform.InvokeProgram(ctx, nil, defaultTimeout, program, args...)
}

// runElevated shells out with privilege escalation, per spec.md section 4.3
// ("apt/dnf/yum/pacman need escalation; paru/brew/user-scoped managers do
// not").
func runElevated(ctx context.Context, program string, args ...string) (string, error) {
	return platform.InvokeElevated(ctx, nil, defaultTimeout, program, args...)
}

// onPath reports whether binary is discoverable on PATH.
func onPath(binary string) bool {
	_, err := platform.LookPath(binary)
	return err == nil
}

// containsFold reports whether haystack contains needle, case-insensitively.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
