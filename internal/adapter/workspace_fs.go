package adapter

import (
	"os"
	"path/filepath"

	m "asympt.dev/pkg/asympt/internal/model"
)

// WorkspaceFS abstracts the filesystem operations needed to stage probe
// sources and harness workspaces. It hides direct os access so the probe
// oracle and workflow can be tested without touching the disk.
type WorkspaceFS interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// CreateTempDir creates a temporary working directory.
	CreateTempDir(pattern string) (m.Path, error)

	// RemoveAll removes a directory and all its contents.
	RemoveAll(path m.Path) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path

	// ListFiles returns the non-directory entries of dir matching the
	// glob pattern.
	ListFiles(dir m.Path, pattern string) ([]m.Path, error)

	// ListDirs returns the immediate subdirectories of dir.
	ListDirs(dir m.Path) ([]m.Path, error)
}

// LocalWorkspaceFS backs WorkspaceFS with the local filesystem.
type LocalWorkspaceFS struct{}

// NewLocalWorkspaceFS constructs a LocalWorkspaceFS.
func NewLocalWorkspaceFS() *LocalWorkspaceFS {
	return &LocalWorkspaceFS{}
}

// ReadFile loads file contents from disk.
func (a *LocalWorkspaceFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to disk.
func (a *LocalWorkspaceFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// CreateTempDir creates a temporary directory with the provided pattern.
func (a *LocalWorkspaceFS) CreateTempDir(pattern string) (m.Path, error) {
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", err
	}

	return m.Path(dir), nil
}

// RemoveAll removes the directory tree rooted at path.
func (a *LocalWorkspaceFS) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}

// JoinPath joins path elements.
func (a *LocalWorkspaceFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

// ListFiles globs for files directly under dir.
func (a *LocalWorkspaceFS) ListFiles(dir m.Path, pattern string) ([]m.Path, error) {
	matches, err := filepath.Glob(filepath.Join(string(dir), pattern))
	if err != nil {
		return nil, err
	}

	paths := make([]m.Path, 0, len(matches))

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}

		paths = append(paths, m.Path(match))
	}

	return paths, nil
}

// ListDirs lists the immediate subdirectories of dir.
func (a *LocalWorkspaceFS) ListDirs(dir m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}

	var paths []m.Path

	for _, entry := range entries {
		if entry.IsDir() {
			paths = append(paths, m.Path(filepath.Join(string(dir), entry.Name())))
		}
	}

	return paths, nil
}
