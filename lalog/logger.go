// Package lalog provides the structured logger used across dhd. It keeps the
// component/actor tagged call shape of the original laitos logger, but
// writes through zerolog instead of the standard library's log package.
package lalog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	initOnce     sync.Once
	globalLogger zerolog.Logger
)

func globalInit() {
	initOnce.Do(func() {
		var w io.Writer = os.Stderr
		if isatty() {
			w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		}
		globalLogger = zerolog.New(w).With().Timestamp().Logger()
	})
}

// isatty reports whether stderr looks like an interactive terminal. Kept as
// a small indirection so tests can force the plain JSON writer.
var isatty = func() bool {
	fi, err := os.Stderr.Stat()
	return err == nil && (fi.Mode()&os.ModeCharDevice) != 0
}

// SetOutput redirects the global logger, used by tests to capture output.
func SetOutput(w io.Writer) {
	globalInit()
	globalLogger = zerolog.New(w).With().Timestamp().Logger()
}

// Logger writes component/actor tagged messages. ComponentName identifies a
// subsystem (e.g. "dag", "pkgmanager"); ComponentID carries instance-specific
// context such as a module or atom id.
type Logger struct {
	ComponentName string
	ComponentID   string
}

func (l Logger) event(ev *zerolog.Event, funcName, actorName string, err error, template string, values ...interface{}) {
	globalInit()
	if l.ComponentName != "" {
		ev = ev.Str("component", l.ComponentName)
	}
	if l.ComponentID != "" {
		ev = ev.Str("id", l.ComponentID)
	}
	if funcName != "" {
		ev = ev.Str("func", funcName)
	}
	if actorName != "" {
		ev = ev.Str("actor", actorName)
	}
	if err != nil {
		ev = ev.AnErr("error", err)
	}
	ev.Msg(fmt.Sprintf(template, values...))
}

// Info logs an informational message.
func (l Logger) Info(funcName, actorName string, err error, template string, values ...interface{}) {
	l.event(globalLogger.Info(), funcName, actorName, err, template, values...)
}

// Warning logs a warning-level message.
func (l Logger) Warning(funcName, actorName string, err error, template string, values ...interface{}) {
	l.event(globalLogger.Warn(), funcName, actorName, err, template, values...)
}

// Abort logs an error-level message and terminates the process, mirroring
// the teacher's fatal-log behavior for unrecoverable startup failures.
func (l Logger) Abort(funcName, actorName string, err error, template string, values ...interface{}) {
	l.event(globalLogger.Fatal(), funcName, actorName, err, template, values...)
}

// DefaultLogger is used by packages that do not need a distinct component
// identity.
var DefaultLogger = Logger{ComponentName: "dhd"}
