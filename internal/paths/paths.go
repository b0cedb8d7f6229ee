// Package paths provides path resolution utilities.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalConfig is the project-local config file, relative to the working directory.
const LocalConfig = ".mdpad/config.yaml"

// UserConfigDir returns ~/.config/mdpad, or "" when the home directory is unknown.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mdpad")
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ResolveDocument turns a user-supplied document argument into an absolute path.
//
//   - "~/notes.md" -> "/home/me/notes.md"
//   - "notes"      -> "/cwd/notes"
//
// A directory is rejected; a missing file is fine (it is created on first save).
func ResolveDocument(arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", fmt.Errorf("empty document path")
	}
	abs, err := filepath.Abs(ExpandHome(arg))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", arg, err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return "", fmt.Errorf("%s is a directory", abs)
	}
	return abs, nil
}
