//go:build windows

package platform

import (
	"os"
	"os/exec"
)

// setProcAttr is a no-op on Windows; process-group semantics differ and the
// engine relies on context cancellation alone to bound subprocess lifetime.
func setProcAttr(cmd *exec.Cmd) {}

// KillProcess terminates a process. Windows has no process-group signal
// equivalent to SIGTERM/SIGKILL, so this simply calls Process.Kill.
func KillProcess(proc *os.Process) bool {
	if proc == nil {
		return true
	}
	err := proc.Kill()
	_, _ = proc.Wait()
	return err == nil
}
