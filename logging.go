package bgcraft

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Logger provides component-prefixed logging for bgcraft. All loggers of a
// process share one session-specific log file under the user config
// directory; when that file cannot be opened, logging degrades to a no-op
// rather than failing the caller.
type Logger struct {
	component string
	l         *log.Logger
}

var (
	sessionID     string
	sessionIDOnce sync.Once

	logOutput     io.Writer
	logOutputOnce sync.Once
)

// SessionID returns the process-wide session identifier, generated once per
// run and stamped into the log filename.
func SessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()[:8]
	})
	return sessionID
}

func sessionLogOutput() io.Writer {
	logOutputOnce.Do(func() {
		logOutput = io.Discard
		base, err := os.UserConfigDir()
		if err != nil {
			return
		}
		dir := filepath.Join(base, "bgcraft", "logs")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return
		}
		path := filepath.Join(dir, fmt.Sprintf("session-%s.log", SessionID()))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		logOutput = f
	})
	return logOutput
}

// NewLogger returns a logger for the named component, writing to the shared
// session log file.
func NewLogger(component string) *Logger {
	return &Logger{
		component: component,
		l:         log.New(sessionLogOutput(), "", log.LstdFlags|log.Lmicroseconds),
	}
}

// DiscardLogger returns a logger that drops everything. Useful in tests and
// as the fallback for nil logger arguments.
func DiscardLogger() *Logger {
	return &Logger{component: "discard", l: log.New(io.Discard, "", 0)}
}

// Infof logs an informational message.
func (lg *Logger) Infof(format string, args ...any) {
	lg.l.Printf("INFO  [%s] %s", lg.component, fmt.Sprintf(format, args...))
}

// Errorf logs an error message.
func (lg *Logger) Errorf(format string, args ...any) {
	lg.l.Printf("ERROR [%s] %s", lg.component, fmt.Sprintf(format, args...))
}

// Debugf logs a debug message.
func (lg *Logger) Debugf(format string, args ...any) {
	lg.l.Printf("DEBUG [%s] %s", lg.component, fmt.Sprintf(format, args...))
}
