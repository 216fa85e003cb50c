package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/reclaim-cli/reclaim/internal/cleaner"
	"github.com/reclaim-cli/reclaim/internal/config"
	"github.com/reclaim-cli/reclaim/internal/errs"
	"github.com/reclaim-cli/reclaim/internal/filesystem"
	"github.com/reclaim-cli/reclaim/internal/models"
	"github.com/reclaim-cli/reclaim/internal/scanner"
	"github.com/reclaim-cli/reclaim/internal/tui"
)

// CleanCommand handles the clean command
type CleanCommand struct {
	fs     filesystem.FileSystem
	runner cleaner.Runner
	opts   *rootOptions

	dryRun      bool
	kinds       []string
	jobs        int
	exclude     []string
	include     []string
	maxDepth    int
	interactive bool
	jsonOut     bool
	yes         bool
}

// NewCleanCommand creates a new clean command
func NewCleanCommand(fs filesystem.FileSystem, runner cleaner.Runner, opts *rootOptions) *cobra.Command {
	cmd := &CleanCommand{fs: fs, runner: runner, opts: opts}

	cobraCmd := &cobra.Command{
		Use:   "clean <path>",
		Short: "Clean Flutter and Rust projects beneath a directory",
		Long: `Scans the given directory for Flutter and Rust projects and runs each
project's clean tool against it in parallel.

Scanning can be interrupted with Ctrl-C; once cleaning has started, running
tools are left to finish.`,
		Example: `  # See what would be freed without touching anything
  reclaim clean ~/src --dry-run

  # Clean only Rust projects, four at a time
  reclaim clean ~/src --kind rust --jobs 4

  # Pick projects interactively, skipping vendored trees
  reclaim clean ~/src --interactive --exclude '**/vendor'`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVarP(&cmd.dryRun, "dry-run", "n", false, "Report estimated sizes without cleaning")
	cobraCmd.Flags().StringSliceVarP(&cmd.kinds, "kind", "t", nil, "Only clean projects of this kind (flutter, rust, mixed)")
	cobraCmd.Flags().IntVarP(&cmd.jobs, "jobs", "j", 0, "Number of parallel jobs (default: CPU count)")
	cobraCmd.Flags().StringSliceVar(&cmd.exclude, "exclude", nil, "Exclude paths matching pattern (repeatable)")
	cobraCmd.Flags().StringSliceVar(&cmd.include, "include", nil, "Only consider paths matching pattern (repeatable)")
	cobraCmd.Flags().IntVar(&cmd.maxDepth, "max-depth", 0, "Maximum scan depth (0 = unbounded)")
	cobraCmd.Flags().BoolVarP(&cmd.interactive, "interactive", "i", false, "Select projects interactively before cleaning")
	cobraCmd.Flags().BoolVar(&cmd.jsonOut, "json", false, "Output results as JSON")
	cobraCmd.Flags().BoolVarP(&cmd.yes, "yes", "y", false, "Skip the confirmation prompt")

	return cobraCmd
}

// Run executes the clean command
func (c *CleanCommand) Run(cmd *cobra.Command, args []string) error {
	log := c.opts.logger()

	cfg, err := config.Load(c.opts.configPath)
	if err != nil {
		return err
	}

	kinds, err := parseKinds(c.kinds)
	if err != nil {
		return err
	}

	jobs := c.jobs
	if jobs == 0 {
		jobs = cfg.MaxParallelJobs
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanCfg := scanner.Config{
		MaxDepth:        c.maxDepth,
		ExcludePatterns: append(append([]string{}, cfg.DefaultExclude...), c.exclude...),
		IncludePatterns: c.include,
		Kinds:           kinds,
		Parallelism:     jobs,
	}

	log.Debug().Str("path", args[0]).Int("max_depth", c.maxDepth).Msg("scanning")

	projects, err := c.scanWithProgress(ctx, cfg, scanCfg, args[0])
	if err != nil {
		if errors.Is(err, errs.ErrInterrupted) {
			log.Warn().Msg("scan interrupted, nothing cleaned")
		}
		return err
	}

	// Stable output regardless of enrichment completion order.
	sort.Slice(projects, func(i, j int) bool { return projects[i].Path < projects[j].Path })

	if len(projects) == 0 {
		if c.jsonOut {
			fmt.Fprintln(cmd.OutOrStdout(), emptyReportJSON)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), tui.WarnStyle.Render("No projects found to clean."))
		}
		return nil
	}

	log.Info().Int("projects", len(projects)).Msg("scan complete")

	if (c.interactive || cfg.InteractiveByDefault) && !c.jsonOut {
		projects, err = tui.SelectProjects(projects)
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), tui.WarnStyle.Render("No projects selected."))
			return nil
		}
	}

	if cfg.ConfirmBeforeClean && !c.dryRun && !c.yes && !c.jsonOut {
		ok, err := tui.ConfirmClean(len(projects), totalEstimatedSize(projects))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), tui.WarnStyle.Render("Cleaning cancelled."))
			return nil
		}
	}

	cln := cleaner.New(c.fs, c.runner, cleaner.Options{
		DryRun:      c.dryRun,
		FlutterArgs: cfg.FlutterCleanArgs,
		CargoArgs:   cfg.CargoCleanArgs,
		Parallelism: jobs,
	})

	results := cln.Clean(projects)
	report := BuildReport(results)

	if c.jsonOut {
		out, err := report.RenderJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), report.RenderText(c.opts.verbose, c.dryRun))
	return nil
}

// scanWithProgress runs the scan, attaching the spinner display when the
// session is interactive.
func (c *CleanCommand) scanWithProgress(ctx context.Context, cfg config.Config, scanCfg scanner.Config, root string) ([]models.Project, error) {
	s := scanner.New(c.fs, scanCfg)

	showProgress := cfg.ShowProgress && !c.opts.quiet && !c.jsonOut &&
		isatty.IsTerminal(os.Stderr.Fd())
	if !showProgress {
		return s.Scan(ctx, root)
	}

	prog := tea.NewProgram(tui.NewScanModel(), tea.WithOutput(os.Stderr))
	done := make(chan struct{})
	go func() {
		_, _ = prog.Run()
		close(done)
	}()

	s.OnVisit = func(visited int) {
		prog.Send(tui.VisitMsg(visited))
	}

	projects, err := s.Scan(ctx, root)

	prog.Send(tui.DoneMsg{})
	<-done

	return projects, err
}

func parseKinds(raw []string) ([]models.ProjectKind, error) {
	kinds := make([]models.ProjectKind, 0, len(raw))
	for _, r := range raw {
		kind := models.ProjectKind(r)
		if !kind.Valid() {
			return nil, fmt.Errorf("unknown project kind %q (expected flutter, rust or mixed)", r)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func totalEstimatedSize(projects []models.Project) int64 {
	var total int64
	for _, p := range projects {
		if p.Metadata.EstimatedSize != nil {
			total += *p.Metadata.EstimatedSize
		}
	}
	return total
}
