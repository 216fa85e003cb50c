package models

import (
	"path/filepath"
	"time"
)

// ProjectKind classifies a project directory by which manifests it contains.
type ProjectKind string

const (
	KindFlutter ProjectKind = "flutter"
	KindRust    ProjectKind = "rust"
	KindMixed   ProjectKind = "mixed"
)

// KindSpec describes one base project kind: the manifest that identifies it,
// the external tool that cleans it, and the build/cache directories that are
// safe to delete without losing source data.
type KindSpec struct {
	Kind            ProjectKind
	Manifest        string
	Tool            string
	DefaultArgs     []string
	ReclaimableDirs []string
}

var kindSpecs = map[ProjectKind]KindSpec{
	KindFlutter: {
		Kind:            KindFlutter,
		Manifest:        "pubspec.yaml",
		Tool:            "flutter",
		DefaultArgs:     []string{"clean"},
		ReclaimableDirs: []string{".dart_tool", "build", ".flutter-plugins-dependencies"},
	},
	KindRust: {
		Kind:            KindRust,
		Manifest:        "Cargo.toml",
		Tool:            "cargo",
		DefaultArgs:     []string{"clean"},
		ReclaimableDirs: []string{"target"},
	},
}

// Spec returns the KindSpec for a base kind. Mixed has no spec of its own;
// callers expand it via BaseKinds first.
func Spec(kind ProjectKind) (KindSpec, bool) {
	spec, ok := kindSpecs[kind]
	return spec, ok
}

// BaseKinds expands a kind into the base kinds it is composed of.
// Mixed folds over both; every other kind is its own single base.
func (k ProjectKind) BaseKinds() []ProjectKind {
	if k == KindMixed {
		return []ProjectKind{KindFlutter, KindRust}
	}
	return []ProjectKind{k}
}

// Valid reports whether k is a known project kind.
func (k ProjectKind) Valid() bool {
	switch k {
	case KindFlutter, KindRust, KindMixed:
		return true
	}
	return false
}

// Metadata holds best-effort descriptive data about a project. An unset
// field means "could not be determined" and is never an error signal.
type Metadata struct {
	Name          string     `json:"name,omitempty"`
	Version       string     `json:"version,omitempty"`
	LastModified  *time.Time `json:"last_modified,omitempty"`
	EstimatedSize *int64     `json:"estimated_size,omitempty"`
}

// Project represents one discovered, classified project directory.
// The path uniquely identifies the project within a scan result; the struct
// is treated as read-only once metadata collection has run.
type Project struct {
	Path     string      `json:"path"`
	Kind     ProjectKind `json:"kind"`
	Metadata Metadata    `json:"metadata"`
}

// NewProject creates a Project with empty metadata.
func NewProject(path string, kind ProjectKind) Project {
	return Project{Path: path, Kind: kind}
}

// Name returns the display name: the manifest name when known, otherwise the
// directory basename.
func (p Project) Name() string {
	if p.Metadata.Name != "" {
		return p.Metadata.Name
	}
	return filepath.Base(p.Path)
}
