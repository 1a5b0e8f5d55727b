// Package errs defines the error taxonomy shared by every dhd package.
// Each exported sentinel identifies a kind of failure; callers match on it
// with errors.Is, and Wrap attaches a message and an optional cause while
// preserving the sentinel in the error chain.
package errs

import "errors"

var (
	// ErrModuleLoad covers loader failures, duplicate module ids, and
	// references to unknown module dependencies.
	ErrModuleLoad = errors.New("module load error")
	// ErrActionPlan covers a planner refusing to lower an action: an
	// unresolved platform selector, a missing package manager, an invalid
	// path or package reference.
	ErrActionPlan = errors.New("action plan error")
	// ErrAtomExecution covers a single atom's Execute failing.
	ErrAtomExecution = errors.New("atom execution error")
	// ErrDependencyResolution covers a cycle in the module graph or atom
	// graph.
	ErrDependencyResolution = errors.New("dependency resolution error")
	// ErrPlatformDetection covers failure to identify the host OS/distro.
	ErrPlatformDetection = errors.New("platform detection error")
	// ErrPackageManager covers no suitable manager found, or a manager
	// command failing.
	ErrPackageManager = errors.New("package manager error")
	// ErrIO covers filesystem and network I/O failures.
	ErrIO = errors.New("io error")
	// ErrParse covers malformed configuration that fails to parse.
	ErrParse = errors.New("parse error")
	// ErrValidation covers configuration that parses but fails semantic
	// validation.
	ErrValidation = errors.New("validation error")
	// ErrExecutionEngine is the aggregate error returned when one or more
	// atoms failed during a DAG run.
	ErrExecutionEngine = errors.New("execution engine error")
)

// wrapped pairs a taxonomy sentinel with a specific message and cause, so
// that errors.Is(err, errs.ErrPackageManager) keeps working after wrapping.
type wrapped struct {
	kind  error
	msg   string
	cause error
}

func (w *wrapped) Error() string {
	if w.cause == nil {
		return w.kind.Error() + ": " + w.msg
	}
	return w.kind.Error() + ": " + w.msg + ": " + w.cause.Error()
}

func (w *wrapped) Unwrap() error {
	return w.kind
}

// Wrap attaches msg and an optional cause to a taxonomy sentinel. The
// returned error satisfies errors.Is(result, kind).
func Wrap(kind error, msg string, cause error) error {
	return &wrapped{kind: kind, msg: msg, cause: cause}
}
