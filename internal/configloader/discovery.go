package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths holds the configuration files found for a run. Empty fields
// mean no such file.
type ConfigPaths struct {
	// User is $XDG_CONFIG_HOME/sarifapply/config.{yaml,yml,toml}.
	User string

	// Project is the nearest .sarifapply.{yml,yaml,toml} at or above the
	// working directory.
	Project string

	// Explicit is the --config path.
	Explicit string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigFiles = []string{".sarifapply.yml", ".sarifapply.yaml", ".sarifapply.toml"}
	userConfigFiles    = []string{"config.yaml", "config.yml", "config.toml"}

	// A .git file marks a worktree or submodule checkout.
	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths looks up the user config and searches upward from workDir
// for the project config.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{Project: project}
	if dir := UserConfigDir(); dir != "" {
		paths.User = firstFile(dir, userConfigFiles)
	}
	return paths, nil
}

// UserConfigDir returns $XDG_CONFIG_HOME/sarifapply, falling back to
// ~/.config/sarifapply. It returns "" when no home directory is known.
func UserConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "sarifapply")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sarifapply")
}

// FindProjectConfig searches startDir and its parents for a project config
// file and returns the first one found, or "" if there is none.
// The search ends at a repository root, the home directory or the
// filesystem root, whichever comes first.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("search project config: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// IsTOMLConfig reports whether path names a TOML file. Every other
// extension is read as YAML.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}
