package cli

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/reclaim-cli/reclaim/internal/config"
	"github.com/reclaim-cli/reclaim/internal/filesystem"
	"github.com/reclaim-cli/reclaim/internal/tui"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(fs filesystem.FileSystem, opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Initialize the configuration file with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().Save(fs, opts.configPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("Configuration initialized!"))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open the configuration file in an editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				defaultPath, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = defaultPath
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Opening config file: %s\n", path)

			opener := editorCommand()
			if err := exec.Command(opener, path).Run(); err != nil {
				return fmt.Errorf("failed to open config file with %s: %w", opener, err)
			}
			return nil
		},
	})

	return configCmd
}

func editorCommand() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "start"
	default:
		return "xdg-open"
	}
}
