// Package cleaner runs the external clean tools against discovered projects
// under a bounded worker pool. Each project's pipeline is independent: no
// project's failure blocks or affects another's, and every project yields
// exactly one CleanResult.
//
// There is deliberately no cancellation once cleaning has started. Killing a
// clean tool mid-run risks leaving the project directory partially cleaned,
// which is worse than letting it finish.
package cleaner

import (
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/reclaim-cli/reclaim/internal/errs"
	"github.com/reclaim-cli/reclaim/internal/filesystem"
	"github.com/reclaim-cli/reclaim/internal/metadata"
	"github.com/reclaim-cli/reclaim/internal/models"
)

// Options configures a Cleaner.
type Options struct {
	// DryRun reports the size estimate without spawning any tool.
	DryRun bool

	// FlutterArgs and CargoArgs override the default tool argument lists.
	FlutterArgs []string
	CargoArgs   []string

	// Parallelism sizes the worker pool. Defaults to the host core count,
	// floor 1.
	Parallelism int
}

// Cleaner dispatches clean commands for projects.
type Cleaner struct {
	fs      filesystem.FileSystem
	runner  Runner
	options Options
}

// New creates a Cleaner.
func New(fs filesystem.FileSystem, runner Runner, options Options) *Cleaner {
	return &Cleaner{fs: fs, runner: runner, options: options}
}

// Clean processes every project across the worker pool and returns one
// result per project. Result order follows the input order; completion order
// does not.
func (c *Cleaner) Clean(projects []models.Project) []models.CleanResult {
	results := make([]models.CleanResult, len(projects))

	var g errgroup.Group
	g.SetLimit(c.parallelism())
	for i, project := range projects {
		g.Go(func() error {
			results[i] = c.cleanProject(project)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// cleanProject runs steps for one project: size estimation, dry-run
// short-circuit, then one tool invocation per base kind.
//
// Mixed projects attempt both tools even when the first fails, for
// diagnostic completeness; the first failure becomes the reported error.
// A partially-successful mixed clean is not rolled back.
func (c *Cleaner) cleanProject(project models.Project) models.CleanResult {
	estimate := c.reclaimableSize(project)

	if c.options.DryRun {
		return models.SucceededResult(project, estimate)
	}

	var firstErr error
	for _, kind := range project.Kind.BaseKinds() {
		if err := c.runKind(project, kind); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return models.FailedResult(project, firstErr)
	}
	return models.SucceededResult(project, estimate)
}

// runKind invokes one base kind's clean tool in the project directory. The
// tool lookup and the permission probe both happen before any process is
// spawned.
func (c *Cleaner) runKind(project models.Project, kind models.ProjectKind) error {
	spec, ok := models.Spec(kind)
	if !ok {
		return nil
	}

	if _, err := c.runner.LookPath(spec.Tool); err != nil {
		return &errs.ToolNotFoundError{Tool: spec.Tool}
	}

	if err := c.checkReadable(project.Path); err != nil {
		return err
	}

	return c.runner.Run(project.Path, spec.Tool, c.argsFor(spec)...)
}

func (c *Cleaner) checkReadable(path string) error {
	if _, err := c.fs.ReadDir(path); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return &errs.PermissionError{Path: path}
		}
		return &errs.PathError{Path: path, Err: err}
	}
	return nil
}

func (c *Cleaner) argsFor(spec models.KindSpec) []string {
	switch spec.Kind {
	case models.KindFlutter:
		if len(c.options.FlutterArgs) > 0 {
			return c.options.FlutterArgs
		}
	case models.KindRust:
		if len(c.options.CargoArgs) > 0 {
			return c.options.CargoArgs
		}
	}
	return spec.DefaultArgs
}

// reclaimableSize sums the sizes of the kind-specific build/cache
// directories. Mixed projects fold over both kinds' directory lists.
func (c *Cleaner) reclaimableSize(project models.Project) int64 {
	var total int64
	for _, kind := range project.Kind.BaseKinds() {
		spec, ok := models.Spec(kind)
		if !ok {
			continue
		}
		for _, dir := range spec.ReclaimableDirs {
			total += metadata.DirSize(c.fs, filepath.Join(project.Path, dir))
		}
	}
	return total
}

func (c *Cleaner) parallelism() int {
	if c.options.Parallelism > 0 {
		return c.options.Parallelism
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}
