package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reclaim-cli/reclaim/internal/cleaner"
	"github.com/reclaim-cli/reclaim/internal/filesystem"
	"github.com/reclaim-cli/reclaim/internal/logging"
)

// rootOptions carries the global flags shared by every subcommand.
type rootOptions struct {
	verbose    int
	quiet      bool
	noColor    bool
	configPath string
}

func (o *rootOptions) logger() zerolog.Logger {
	return logging.New(o.verbose, o.quiet, o.noColor)
}

// NewRootCommand creates the root command.
func NewRootCommand(fs filesystem.FileSystem, runner cleaner.Runner) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "reclaim",
		Short: "Clean Flutter and Rust project build artifacts",
		Long: `reclaim finds Flutter and Rust projects beneath a directory and runs their
clean tools against them, reporting how much disk space was freed.

Projects are recognized by their manifests (pubspec.yaml, Cargo.toml);
cleaning delegates to the flutter and cargo executables on PATH.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "Increase log verbosity")
	rootCmd.PersistentFlags().BoolVar(&opts.quiet, "quiet", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file path (default ~/.config/reclaim/config.toml)")

	rootCmd.AddCommand(NewCleanCommand(fs, runner, opts))
	rootCmd.AddCommand(NewListCommand(fs, opts))
	rootCmd.AddCommand(NewConfigCommand(fs, opts))

	return rootCmd
}

// Execute runs the root command against the real filesystem and subprocess
// runner.
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	runner := cleaner.NewOSRunner()

	return NewRootCommand(fs, runner).Execute()
}
