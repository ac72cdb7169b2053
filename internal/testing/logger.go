package testing

import (
	"fmt"
	"strings"
	"sync"
)

// RecordingLogger captures log lines for assertions.
type RecordingLogger struct {
	mu    sync.Mutex
	Lines []string
}

func (l *RecordingLogger) record(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Lines = append(l.Lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *RecordingLogger) Verbose(format string, args ...interface{}) {
	l.record("VERBOSE", format, args...)
}

func (l *RecordingLogger) Info(format string, args ...interface{}) {
	l.record("INFO", format, args...)
}

func (l *RecordingLogger) Error(format string, args ...interface{}) {
	l.record("ERROR", format, args...)
}

// Contains reports whether any captured line contains substr.
func (l *RecordingLogger) Contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.Lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// Output returns all captured lines joined by newlines.
func (l *RecordingLogger) Output() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.Lines, "\n")
}
