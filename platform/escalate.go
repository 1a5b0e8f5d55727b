package platform

import (
	"context"
	"errors"
	"sync"
	"time"
)

// escalationOrder is the probing preference order from spec.md 4.2.
var escalationOrder = []string{"run0", "doas", "sudo"}

// ErrNoEscalator is returned when none of run0, doas, or sudo is on PATH.
var ErrNoEscalator = errors.New("no privilege escalation helper found on PATH (tried run0, doas, sudo)")

var (
	escalateOnce sync.Once
	escalatePath string
	escalateErr  error
)

// DetectEscalation probes PATH for a privilege escalation helper, in
// preference order run0, doas, sudo, and memoizes the result for the
// process lifetime (the escalator binary cannot change mid-run).
func DetectEscalation() (string, error) {
	escalateOnce.Do(func() {
		for _, candidate := range escalationOrder {
			if path, err := LookPath(candidate); err == nil {
				escalatePath = path
				return
			}
		}
		escalateErr = ErrNoEscalator
	})
	return escalatePath, escalateErr
}

// resetEscalationForTest clears the memoized escalator lookup.
func resetEscalationForTest() {
	escalateOnce = sync.Once{}
	escalatePath = ""
	escalateErr = nil
}

// InvokeElevated prepends the discovered escalator to program+args and
// invokes it via InvokeProgram.
func InvokeElevated(ctx context.Context, envVars []string, timeout time.Duration, program string, args ...string) (string, error) {
	escalator, err := DetectEscalation()
	if err != nil {
		return "", err
	}
	allArgs := append([]string{program}, args...)
	return InvokeProgram(ctx, envVars, timeout, escalator, allArgs...)
}
