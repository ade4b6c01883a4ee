// Where: cli/internal/infra/config/paths.go
// What: Resolve the cloud functions root and config file locations.
// Why: Every command agrees on where functions, artifacts and config live.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/poruru/alicf/cli/internal/envutil"
	"github.com/poruru/alicf/cli/internal/meta"
)

// ResolveRoot returns the absolute cloud functions root.
// Priority order.
// 1. Explicit override (flag), relative to cwd.
// 2. ALICF_ROOT environment variable, relative to cwd.
// 3. <cwd>/cloudfunctions.
func ResolveRoot(cwd, override string) (string, error) {
	if strings.TrimSpace(cwd) == "" {
		return "", fmt.Errorf("working directory is required")
	}
	root := strings.TrimSpace(override)
	if root == "" {
		root = envutil.GetHostEnv("ROOT")
	}
	if root == "" {
		root = meta.FunctionsDir
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}
	return filepath.Clean(root), nil
}

// ResolveConfigPath returns the config file path: the override relative to
// cwd when given, otherwise <root>/config.json.
func ResolveConfigPath(cwd, root, override string) string {
	path := strings.TrimSpace(override)
	if path == "" {
		return filepath.Join(root, meta.ConfigFile)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	return filepath.Clean(path)
}

// HostProjectDir returns the project that contains the functions root.
func HostProjectDir(root string) string {
	return filepath.Dir(root)
}
