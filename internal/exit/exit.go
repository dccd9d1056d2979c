// Package exit carries a process outcome (message, destination, exit
// code) from the point of failure back to main without calling
// os.Exit deep inside the program.
package exit

import (
	"fmt"
	"io"
	"os"
)

// Result holds the output destination and exit code for program
// termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to its destination.
func (r *Result) Print() {
	fmt.Fprint(r.Output, r.Message)
}

// Error creates an error result: stderr, exit code 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// Usage creates a usage-error result: stderr, exit code 2, matching
// the flag package's convention for bad invocations.
func Usage(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: 2,
		Message:  message,
	}
}

// Success creates a successful result: stdout, exit code 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: 0,
		Message:  message,
	}
}
