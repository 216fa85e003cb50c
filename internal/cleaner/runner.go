package cleaner

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"

	"github.com/reclaim-cli/reclaim/internal/errs"
)

// Runner provides an abstraction over external tool execution for
// testability. The only observable contract with a spawned tool is its exit
// status and captured output.
type Runner interface {
	// LookPath resolves a tool name on the executable search path.
	LookPath(tool string) (string, error)

	// Run executes the tool with args in dir and blocks until it exits.
	// A non-zero exit maps to *errs.ExitError; a failure to launch maps
	// to *errs.ExecError.
	Run(dir, tool string, args ...string) error
}

// OSRunner implements Runner using real subprocesses.
type OSRunner struct{}

// NewOSRunner creates a new OSRunner.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

func (r *OSRunner) LookPath(tool string) (string, error) {
	return exec.LookPath(tool)
}

func (r *OSRunner) Run(dir, tool string, args ...string) error {
	command := strings.Join(append([]string{tool}, args...), " ")

	cmd := exec.Command(tool, args...)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &errs.ExitError{Command: command, Code: exitErr.ExitCode()}
		}
		return &errs.ExecError{Command: command, Err: err}
	}

	return nil
}
