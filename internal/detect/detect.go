// Package detect classifies directories into project kinds by testing for
// manifest files. Detection only looks at direct children of a directory;
// ancestors are never consulted.
package detect

import (
	"path/filepath"

	"github.com/reclaim-cli/reclaim/internal/filesystem"
	"github.com/reclaim-cli/reclaim/internal/models"
)

// Classify returns the project kind of path, or ok=false when neither
// manifest is present. It is a pure function of manifest existence and never
// reads file contents.
func Classify(fs filesystem.FileSystem, path string) (models.ProjectKind, bool) {
	hasPubspec := fs.Exists(filepath.Join(path, "pubspec.yaml"))
	hasCargo := fs.Exists(filepath.Join(path, "Cargo.toml"))

	switch {
	case hasPubspec && hasCargo:
		return models.KindMixed, true
	case hasPubspec:
		return models.KindFlutter, true
	case hasCargo:
		return models.KindRust, true
	default:
		return "", false
	}
}

// IsProjectRoot reports whether path contains at least one known manifest.
// The scanner uses it as a cheap pre-check before full classification.
func IsProjectRoot(fs filesystem.FileSystem, path string) bool {
	return fs.Exists(filepath.Join(path, "pubspec.yaml")) ||
		fs.Exists(filepath.Join(path, "Cargo.toml"))
}
