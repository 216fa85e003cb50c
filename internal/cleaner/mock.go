package cleaner

import (
	"fmt"
	"sync"
)

// RunnerCall records one Run invocation on the mock.
type RunnerCall struct {
	Dir  string
	Tool string
	Args []string
}

// MockRunner implements Runner for tests. Zero value is a runner on which
// every tool resolves and every command succeeds.
type MockRunner struct {
	mu sync.Mutex

	// MissingTools makes LookPath fail for the listed tool names.
	MissingTools map[string]bool

	// FailWith makes Run return the given error for the listed tool names.
	FailWith map[string]error

	calls []RunnerCall
}

// NewMockRunner creates a new MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		MissingTools: make(map[string]bool),
		FailWith:     make(map[string]error),
	}
}

func (r *MockRunner) LookPath(tool string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.MissingTools[tool] {
		return "", fmt.Errorf("%s not found", tool)
	}
	return "/usr/bin/" + tool, nil
}

func (r *MockRunner) Run(dir, tool string, args ...string) error {
	r.mu.Lock()
	r.calls = append(r.calls, RunnerCall{Dir: dir, Tool: tool, Args: args})
	err := r.FailWith[tool]
	r.mu.Unlock()
	return err
}

// Calls returns a copy of the recorded Run invocations.
func (r *MockRunner) Calls() []RunnerCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RunnerCall(nil), r.calls...)
}

// CallsFor returns the recorded invocations of one tool.
func (r *MockRunner) CallsFor(tool string) []RunnerCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	var calls []RunnerCall
	for _, call := range r.calls {
		if call.Tool == tool {
			calls = append(calls, call)
		}
	}
	return calls
}
