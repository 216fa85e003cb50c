package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reclaim-cli/reclaim/internal/errs"
	"github.com/reclaim-cli/reclaim/internal/filesystem"
	"github.com/reclaim-cli/reclaim/internal/models"
)

func newRustProject(fsys *filesystem.MockFileSystem, path string, targetSize int64) models.Project {
	fsys.AddFile(path+"/Cargo.toml", []byte("[package]\n"))
	if targetSize > 0 {
		fsys.AddSizedFile(path+"/target/debug/bin", targetSize)
	}
	return models.NewProject(path, models.KindRust)
}

func requireInvariants(t *testing.T, result models.CleanResult) {
	t.Helper()
	if result.Success {
		require.NoError(t, result.Err, "successful result must not carry an error")
	} else {
		require.Error(t, result.Err, "failed result must carry an error")
		require.Nil(t, result.SpaceFreed, "failed result must not claim freed space")
	}
}

func TestClean_DryRunNeverSpawns(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()

	project := newRustProject(fsys, "/src/lib", 4096)

	c := New(fsys, runner, Options{DryRun: true, Parallelism: 1})
	results := c.Clean([]models.Project{project})

	require.Len(t, results, 1)
	requireInvariants(t, results[0])
	require.True(t, results[0].Success)
	require.NotNil(t, results[0].SpaceFreed)
	require.Equal(t, int64(4096), *results[0].SpaceFreed)
	require.Empty(t, runner.Calls(), "dry-run must never invoke an external process")
}

func TestClean_EstimateScopedToReclaimableDirs(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()

	// Source files do not count, only the kind's build directories.
	project := newRustProject(fsys, "/src/lib", 1000)
	fsys.AddSizedFile("/src/lib/src/main.rs", 999999)

	c := New(fsys, runner, Options{DryRun: true})
	results := c.Clean([]models.Project{project})

	require.Equal(t, int64(1000), *results[0].SpaceFreed)
}

func TestClean_MixedEstimateIsUnionOfKinds(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()

	fsys.AddFile("/src/both/pubspec.yaml", []byte("name: both\n"))
	fsys.AddFile("/src/both/Cargo.toml", []byte("[package]\n"))
	fsys.AddSizedFile("/src/both/build/out", 100)
	fsys.AddSizedFile("/src/both/.dart_tool/x", 20)
	fsys.AddSizedFile("/src/both/target/debug/y", 3)

	c := New(fsys, runner, Options{DryRun: true})
	results := c.Clean([]models.Project{models.NewProject("/src/both", models.KindMixed)})

	require.Equal(t, int64(123), *results[0].SpaceFreed)
}

func TestClean_RunsToolInProjectDir(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()

	project := newRustProject(fsys, "/src/lib", 0)

	c := New(fsys, runner, Options{Parallelism: 1})
	results := c.Clean([]models.Project{project})

	require.True(t, results[0].Success)
	calls := runner.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "cargo", calls[0].Tool)
	require.Equal(t, "/src/lib", calls[0].Dir)
	require.Equal(t, []string{"clean"}, calls[0].Args)
}

func TestClean_ConfiguredArgsOverrideDefaults(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()

	project := newRustProject(fsys, "/src/lib", 0)

	c := New(fsys, runner, Options{CargoArgs: []string{"clean", "--release"}})
	c.Clean([]models.Project{project})

	calls := runner.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, []string{"clean", "--release"}, calls[0].Args)
}

func TestClean_ToolNotFound(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()
	runner.MissingTools["cargo"] = true

	project := newRustProject(fsys, "/src/lib", 0)

	c := New(fsys, runner, Options{})
	results := c.Clean([]models.Project{project})

	requireInvariants(t, results[0])
	require.False(t, results[0].Success)

	var notFound *errs.ToolNotFoundError
	require.ErrorAs(t, results[0].Err, &notFound)
	require.Equal(t, "cargo", notFound.Tool)
	require.Empty(t, runner.Calls(), "missing tool must fail before any spawn")
}

func TestClean_CommandFailure(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()
	runner.FailWith["cargo"] = &errs.ExitError{Command: "cargo clean", Code: 101}

	project := newRustProject(fsys, "/src/lib", 4096)

	c := New(fsys, runner, Options{})
	results := c.Clean([]models.Project{project})

	requireInvariants(t, results[0])
	require.False(t, results[0].Success)

	var exitErr *errs.ExitError
	require.ErrorAs(t, results[0].Err, &exitErr)
	require.Equal(t, 101, exitErr.Code)
}

func TestClean_PermissionDenied(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()

	project := newRustProject(fsys, "/src/lib", 0)
	fsys.FailPath("/src/lib", fmt.Errorf("open: %w", fs.ErrPermission))

	c := New(fsys, runner, Options{})
	results := c.Clean([]models.Project{project})

	requireInvariants(t, results[0])

	var permErr *errs.PermissionError
	require.ErrorAs(t, results[0].Err, &permErr)
	require.Empty(t, runner.Calls())
}

func TestClean_MixedRunsBothToolsDespiteFirstFailure(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()
	runner.FailWith["flutter"] = &errs.ExitError{Command: "flutter clean", Code: 1}

	fsys.AddFile("/src/both/pubspec.yaml", []byte("name: both\n"))
	fsys.AddFile("/src/both/Cargo.toml", []byte("[package]\n"))

	c := New(fsys, runner, Options{})
	results := c.Clean([]models.Project{models.NewProject("/src/both", models.KindMixed)})

	requireInvariants(t, results[0])
	require.False(t, results[0].Success)

	// Both tools were attempted; the first failure is the reported error.
	require.Len(t, runner.CallsFor("flutter"), 1)
	require.Len(t, runner.CallsFor("cargo"), 1)

	var exitErr *errs.ExitError
	require.ErrorAs(t, results[0].Err, &exitErr)
	require.Equal(t, "flutter clean", exitErr.Command)
}

func TestClean_FailureIsolation(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	runner := NewMockRunner()

	bad := newRustProject(fsys, "/src/bad", 0)
	good := models.NewProject("/src/good", models.KindFlutter)
	fsys.AddFile("/src/good/pubspec.yaml", []byte("name: good\n"))
	runner.FailWith["cargo"] = &errs.ExitError{Command: "cargo clean", Code: 1}

	c := New(fsys, runner, Options{Parallelism: 2})
	results := c.Clean([]models.Project{bad, good})

	require.Len(t, results, 2)
	for _, result := range results {
		requireInvariants(t, result)
	}
	require.False(t, results[0].Success)
	require.True(t, results[1].Success, "one project's failure must not affect another's")
}

func TestClean_ParallelismProducesAllResults(t *testing.T) {
	const projectCount = 6

	for parallelism := 1; parallelism <= projectCount; parallelism++ {
		t.Run(fmt.Sprintf("parallelism_%d", parallelism), func(t *testing.T) {
			fsys := filesystem.NewMockFileSystem()
			runner := NewMockRunner()

			var projects []models.Project
			var wantTotal int64
			for i := 0; i < projectCount; i++ {
				size := int64(1000 * (i + 1))
				wantTotal += size
				projects = append(projects,
					newRustProject(fsys, fmt.Sprintf("/src/p%d", i), size))
			}

			c := New(fsys, runner, Options{Parallelism: parallelism})
			results := c.Clean(projects)

			require.Len(t, results, projectCount)

			var total int64
			for _, result := range results {
				requireInvariants(t, result)
				require.True(t, result.Success)
				require.NotNil(t, result.SpaceFreed)
				total += *result.SpaceFreed
			}
			require.Equal(t, wantTotal, total)
			require.Len(t, runner.Calls(), projectCount)
		})
	}
}

func TestClean_NoProjects(t *testing.T) {
	c := New(filesystem.NewMockFileSystem(), NewMockRunner(), Options{})
	require.Empty(t, c.Clean(nil))
}

func TestOSRunner_ExitCodePreserved(t *testing.T) {
	runner := NewOSRunner()

	err := runner.Run(t.TempDir(), "sh", "-c", "exit 7")
	var exitErr *errs.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 7, exitErr.Code)
}

func TestOSRunner_LaunchFailure(t *testing.T) {
	runner := NewOSRunner()

	err := runner.Run(t.TempDir(), "./definitely-not-a-real-binary")
	var execErr *errs.ExecError
	require.ErrorAs(t, err, &execErr)
	require.False(t, errors.As(err, new(*errs.ExitError)))
}
