// Package errs defines the error kinds shared by the scanner and cleaner.
// The distinction between kinds is user-facing: a missing tool, a tool that
// could not be launched, and a tool that exited non-zero each call for a
// different remediation.
package errs

import (
	"errors"
	"fmt"
)

// ErrInterrupted is returned when a scan observes cancellation. Partial scan
// results are discarded with it.
var ErrInterrupted = errors.New("interrupted")

// PathError reports that a root or project path is missing, not a directory,
// or unreadable.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("failed to access path %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// PermissionError is a path-access failure split out for remediation
// messaging (chmod/ownership rather than "does it exist").
type PermissionError struct {
	Path string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("insufficient permissions for %s", e.Path)
}

// ToolNotFoundError reports that a required external executable is absent
// from PATH. It fails a project's clean before any subprocess is spawned.
type ToolNotFoundError struct {
	Tool string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s executable not found in PATH", e.Tool)
}

// ExecError reports that an external process could not be launched at all.
type ExecError struct {
	Command string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to execute command %q: %v", e.Command, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// ExitError reports that an external process launched but exited with a
// non-zero status. The code is preserved for diagnostics.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", e.Command, e.Code)
}
