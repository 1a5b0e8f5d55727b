package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/korora-tech/dhd/lalog"
)

// MaxExternalProgramOutputBytes bounds how much combined stdout+stderr is
// kept in memory for a subprocess invocation, matching the teacher's
// platform.MaxExternalProgramOutputBytes.
const MaxExternalProgramOutputBytes = 1024 * 1024

// CommonPATH supplements the inherited PATH with the usual executable
// locations, in case a restrictive parent environment has stripped it down.
const CommonPATH = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin:/opt/bin:/opt/sbin"

// InvokeProgram launches an external program, waits for it to exit or the
// context to be cancelled/timed out, and returns combined stdout+stderr.
// A nil ctx is treated as context.Background(). envVars, when non-nil, are
// appended after the inherited environment and CommonPATH, so they take
// precedence over both.
func InvokeProgram(ctx context.Context, envVars []string, timeout time.Duration, program string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	combinedEnv := append([]string{}, os.Environ()...)
	path := CommonPATH
	if inherited := os.Getenv("PATH"); inherited != "" {
		path = inherited + string(os.PathListSeparator) + CommonPATH
	}
	combinedEnv = append(combinedEnv, "PATH="+path)
	combinedEnv = append(combinedEnv, envVars...)

	outBuf := lalog.NewByteLogWriter(io.Discard, MaxExternalProgramOutputBytes)
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Env = combinedEnv
	cmd.Stdout = outBuf
	cmd.Stderr = outBuf
	setProcAttr(cmd)

	startTime := time.Now()
	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("%q timed out after %s", program, time.Since(startTime))
	}
	return string(outBuf.Retrieve(false)), err
}

// LookPath is a thin wrapper over exec.LookPath, kept here so callers only
// depend on the platform package when probing for an executable on PATH.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.New("not found on PATH: " + name)
	}
	return path, nil
}
