package models

// CleanResult captures the outcome of one clean attempt (or dry-run) for one
// project.
//
// Invariants: Err is set iff Success is false; SpaceFreed is only set when
// Success is true and the reclaimed byte count is known.
type CleanResult struct {
	Project    Project
	Success    bool
	Err        error
	SpaceFreed *int64
}

// SucceededResult builds a successful result carrying the reclaimed size.
func SucceededResult(project Project, spaceFreed int64) CleanResult {
	return CleanResult{Project: project, Success: true, SpaceFreed: &spaceFreed}
}

// FailedResult builds a failed result carrying the causing error.
func FailedResult(project Project, err error) CleanResult {
	return CleanResult{Project: project, Success: false, Err: err}
}
