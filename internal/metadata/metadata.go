// Package metadata enriches classified projects with display data and size
// estimates. Everything here is best-effort: a malformed manifest leaves the
// corresponding fields unset, it never fails the collection.
package metadata

import (
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/reclaim-cli/reclaim/internal/errs"
	"github.com/reclaim-cli/reclaim/internal/filesystem"
	"github.com/reclaim-cli/reclaim/internal/models"
)

// Collect returns a copy of project enriched with manifest metadata, the
// directory modification time, and a recursive size estimate.
//
// It fails only when the project directory itself cannot be read; manifest
// parse errors and per-entry walk errors are swallowed.
func Collect(fsys filesystem.FileSystem, project models.Project) (models.Project, error) {
	info, err := fsys.Stat(project.Path)
	if err != nil {
		return project, &errs.PathError{Path: project.Path, Err: err}
	}

	modTime := info.ModTime()
	project.Metadata.LastModified = &modTime

	for _, kind := range project.Kind.BaseKinds() {
		switch kind {
		case models.KindFlutter:
			collectPubspec(fsys, &project)
		case models.KindRust:
			collectCargo(fsys, &project)
		}
	}

	size := DirSize(fsys, project.Path)
	project.Metadata.EstimatedSize = &size

	return project, nil
}

// collectPubspec reads name/version from the top level of pubspec.yaml.
func collectPubspec(fsys filesystem.FileSystem, project *models.Project) {
	data, err := fsys.ReadFile(filepath.Join(project.Path, "pubspec.yaml"))
	if err != nil {
		return
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return
	}

	if name, ok := doc["name"].(string); ok && project.Metadata.Name == "" {
		project.Metadata.Name = name
	}
	if version, ok := doc["version"].(string); ok && project.Metadata.Version == "" {
		project.Metadata.Version = version
	}
}

// collectCargo reads name/version from the [package] section of Cargo.toml.
// Fields already set (by pubspec, on mixed projects) take precedence.
func collectCargo(fsys filesystem.FileSystem, project *models.Project) {
	data, err := fsys.ReadFile(filepath.Join(project.Path, "Cargo.toml"))
	if err != nil {
		return
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return
	}

	pkg, ok := doc["package"].(map[string]interface{})
	if !ok {
		return
	}

	if name, ok := pkg["name"].(string); ok && project.Metadata.Name == "" {
		project.Metadata.Name = name
	}
	if version, ok := pkg["version"].(string); ok && project.Metadata.Version == "" {
		project.Metadata.Version = version
	}
}

// DirSize returns the total size in bytes of regular files under path,
// recursively. Symlinks are never followed, so cycles cannot double-count.
// Unreadable entries are skipped. A missing path counts as zero.
func DirSize(fsys filesystem.FileSystem, path string) int64 {
	entries, err := fsys.ReadDir(path)
	if err != nil {
		return 0
	}

	var total int64
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}

		childPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			total += DirSize(fsys, childPath)
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
	}

	return total
}
