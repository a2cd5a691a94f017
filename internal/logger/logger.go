// Package logger provides verbose logging for the Docket CLI.
// When verbose mode is enabled via the --verbose flag, pipeline progress
// is printed to stderr so summary output on stdout stays clean.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// logf writes one levelled line when verbose mode is on. Writers take the
// full lock: the shared writer is not required to be safe for concurrent
// use, so writes must be serialized here.
func logf(level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
	}
}

// Debug prints a fine-grained progress message, such as a single
// pagination step or retry.
func Debug(format string, args ...any) {
	logf("DEBUG", format, args...)
}

// Info prints a coarse pipeline milestone, such as the fetch or filter
// stage completing.
func Info(format string, args ...any) {
	logf("INFO", format, args...)
}

// Warn prints a non-fatal problem, such as a skipped opinion.
func Warn(format string, args ...any) {
	logf("WARN", format, args...)
}

// Section prints a header that groups the messages of one run. Like logf,
// it holds the full lock for the duration of the write.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
