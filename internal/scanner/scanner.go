// Package scanner walks a directory tree looking for project roots. The walk
// itself is single-threaded and cooperatively cancellable; metadata
// enrichment of the discovered candidates fans out across a bounded pool.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/reclaim-cli/reclaim/internal/detect"
	"github.com/reclaim-cli/reclaim/internal/errs"
	"github.com/reclaim-cli/reclaim/internal/filesystem"
	"github.com/reclaim-cli/reclaim/internal/metadata"
	"github.com/reclaim-cli/reclaim/internal/models"
)

// Config controls one scan. It is consumed as an immutable value.
type Config struct {
	// MaxDepth bounds recursion below the root; 0 means unbounded.
	MaxDepth int

	// ExcludePatterns and IncludePatterns are gitignore-style globs matched
	// against root-relative paths. They shape the candidate set only;
	// traversal always descends, so nested projects stay discoverable.
	ExcludePatterns []string
	IncludePatterns []string

	// Kinds restricts results to the listed project kinds; empty allows all.
	Kinds []models.ProjectKind

	// Parallelism bounds concurrent metadata collection.
	// Defaults to the host core count, floor 1.
	Parallelism int
}

// Scanner discovers projects beneath a root path.
type Scanner struct {
	fs     filesystem.FileSystem
	config Config

	// OnVisit, when set, is called with the running count of visited
	// directories. Used for progress display.
	OnVisit func(visited int)
}

// New creates a Scanner over the given filesystem.
func New(fs filesystem.FileSystem, config Config) *Scanner {
	return &Scanner{fs: fs, config: config}
}

// Scan walks the tree rooted at root and returns every directory that passes
// filtering and classification, enriched with metadata.
//
// Cancelling ctx aborts the walk with errs.ErrInterrupted and discards all
// partial candidates; a half-built list would under-report reclaimable
// space. I/O errors on the root are fatal; errors deeper in the tree skip
// the affected entry only.
//
// Result order is not guaranteed stable across runs; callers that need
// determinism must sort by path.
func (s *Scanner) Scan(ctx context.Context, root string) ([]models.Project, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, &errs.PathError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &errs.PathError{Path: root, Err: fmt.Errorf("not a directory")}
	}

	exclude := compileMatcher(s.config.ExcludePatterns, root)
	include := compileMatcher(s.config.IncludePatterns, root)

	w := &walker{
		scanner: s,
		root:    root,
		exclude: exclude,
		include: include,
	}
	if err := w.walk(ctx, root, 0); err != nil {
		return nil, err
	}

	return s.enrich(w.candidates)
}

type walker struct {
	scanner    *Scanner
	root       string
	exclude    gitignore.GitIgnore
	include    gitignore.GitIgnore
	visited    int
	candidates []models.Project
}

func (w *walker) walk(ctx context.Context, path string, depth int) error {
	select {
	case <-ctx.Done():
		return errs.ErrInterrupted
	default:
	}

	w.visited++
	if w.scanner.OnVisit != nil {
		w.scanner.OnVisit(w.visited)
	}

	if !w.filtered(path) && detect.IsProjectRoot(w.scanner.fs, path) {
		if kind, ok := detect.Classify(w.scanner.fs, path); ok && w.allowedKind(kind) {
			w.candidates = append(w.candidates, models.NewProject(path, kind))
		}
	}

	if max := w.scanner.config.MaxDepth; max > 0 && depth >= max {
		return nil
	}

	entries, err := w.scanner.fs.ReadDir(path)
	if err != nil {
		// The root was already checked; an unreadable subdirectory must
		// not abort an otherwise-successful scan.
		if path == w.root {
			return &errs.PathError{Path: path, Err: err}
		}
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if err := w.walk(ctx, filepath.Join(path, entry.Name()), depth+1); err != nil {
			return err
		}
	}

	return nil
}

// filtered reports whether path is pushed out of the candidate set by the
// include/exclude patterns. Non-empty includes require at least one match;
// any exclude match removes the candidate.
func (w *walker) filtered(path string) bool {
	if path == w.root {
		return false
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	if w.include != nil {
		match := w.include.Relative(rel, true)
		if match == nil || !match.Ignore() {
			return true
		}
	}

	if w.exclude != nil {
		if match := w.exclude.Relative(rel, true); match != nil && match.Ignore() {
			return true
		}
	}

	return false
}

func (w *walker) allowedKind(kind models.ProjectKind) bool {
	if len(w.scanner.config.Kinds) == 0 {
		return true
	}
	for _, allowed := range w.scanner.config.Kinds {
		if allowed == kind {
			return true
		}
	}
	return false
}

// enrich runs metadata collection for every candidate across a bounded pool.
// Each goroutine owns exactly one result slot. Candidates whose project
// directory turned unreadable between walk and enrichment are dropped.
func (s *Scanner) enrich(candidates []models.Project) ([]models.Project, error) {
	if len(candidates) == 0 {
		return []models.Project{}, nil
	}

	slots := make([]*models.Project, len(candidates))

	var g errgroup.Group
	g.SetLimit(s.parallelism())
	for i, candidate := range candidates {
		g.Go(func() error {
			enriched, err := metadata.Collect(s.fs, candidate)
			if err != nil {
				return nil
			}
			slots[i] = &enriched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(candidates))
	for _, slot := range slots {
		if slot != nil {
			projects = append(projects, *slot)
		}
	}
	return projects, nil
}

func (s *Scanner) parallelism() int {
	if s.config.Parallelism > 0 {
		return s.config.Parallelism
	}
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}

// compileMatcher builds a gitignore-style matcher from pattern lines.
// Returns nil when there is nothing to match.
func compileMatcher(patterns []string, base string) gitignore.GitIgnore {
	if len(patterns) == 0 {
		return nil
	}
	return gitignore.New(strings.NewReader(strings.Join(patterns, "\n")), base, nil)
}
