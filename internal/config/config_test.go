package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reclaim-cli/reclaim/internal/filesystem"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_ReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_exclude = ["vendor"]
cargo_clean_args = ["clean", "--release"]
max_parallel_jobs = 3
confirm_before_clean = false
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, []string{"vendor"}, cfg.DefaultExclude)
	require.Equal(t, []string{"clean", "--release"}, cfg.CargoCleanArgs)
	require.Equal(t, 3, cfg.MaxParallelJobs)
	require.False(t, cfg.ConfirmBeforeClean)

	// Unspecified keys keep their defaults.
	require.Equal(t, []string{"clean"}, cfg.FlutterCleanArgs)
	require.True(t, cfg.ShowProgress)
}

func TestLoad_MalformedFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_exclude = [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSave_WritesParseableTOML(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	path := "/home/user/.config/reclaim/config.toml"

	cfg := Default()
	cfg.MaxParallelJobs = 8
	require.NoError(t, cfg.Save(fs, path))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "max_parallel_jobs = 8")
	require.Contains(t, string(data), `flutter_clean_args = ["clean"]`)
}
