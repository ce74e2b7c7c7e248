package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

var (
	verbose atomic.Bool
	output  io.Writer = os.Stderr
)

// DebugEnabled returns true if debug mode is enabled via TT_DEBUG environment variable
// or the verbose flag
func DebugEnabled() bool {
	return os.Getenv("TT_DEBUG") != "" || verbose.Load()
}

// SetVerbose turns debug output on or off regardless of TT_DEBUG
func SetVerbose(enabled bool) {
	verbose.Store(enabled)
}

// SetOutput redirects debug output. Not safe to call while other goroutines log.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(output, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(output, args...)
	}
}
