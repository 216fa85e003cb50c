package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reclaim-cli/reclaim/internal/config"
	"github.com/reclaim-cli/reclaim/internal/filesystem"
	"github.com/reclaim-cli/reclaim/internal/scanner"
)

// ListCommand handles the list command
type ListCommand struct {
	fs   filesystem.FileSystem
	opts *rootOptions

	kinds   []string
	jsonOut bool
}

// NewListCommand creates a new list command
func NewListCommand(fs filesystem.FileSystem, opts *rootOptions) *cobra.Command {
	cmd := &ListCommand{fs: fs, opts: opts}

	cobraCmd := &cobra.Command{
		Use:   "list <path>",
		Short: "List projects without cleaning them",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringSliceVarP(&cmd.kinds, "kind", "t", nil, "Filter by project kind (flutter, rust, mixed)")
	cobraCmd.Flags().BoolVar(&cmd.jsonOut, "json", false, "Output as JSON")

	return cobraCmd
}

// Run executes the list command
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.opts.configPath)
	if err != nil {
		return err
	}

	kinds, err := parseKinds(c.kinds)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := scanner.New(c.fs, scanner.Config{
		ExcludePatterns: cfg.DefaultExclude,
		Kinds:           kinds,
		Parallelism:     cfg.MaxParallelJobs,
	})

	projects, err := s.Scan(ctx, args[0])
	if err != nil {
		return err
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].Path < projects[j].Path })

	if c.jsonOut {
		data, err := json.MarshalIndent(projects, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal projects: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), RenderProjectList(projects))
	return nil
}
