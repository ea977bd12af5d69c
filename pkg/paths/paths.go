package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	EnvConfigDir = "ICONRULES_CONFIG_DIR"
	EnvStateDir  = "ICONRULES_STATE_DIR"
	EnvHome      = "HOME"
)

// Default directories and files
const (
	AppDirName    = "iconrules"
	ThemeFileTOML = "theme.toml"
	ThemeFileYAML = "theme.yaml"
	LogFileName   = "iconrules.log"
)

// ThemeFileNames lists accepted theme file names in lookup order
var ThemeFileNames = []string{ThemeFileTOML, ThemeFileYAML}

// ConfigDir returns the user configuration directory
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigSearchDirs returns the user config directory followed by the
// system-wide XDG config directories
func ConfigSearchDirs() []string {
	dirs := []string{ConfigDir()}
	if os.Getenv(EnvConfigDir) != "" {
		return dirs
	}
	for _, d := range xdg.ConfigDirs {
		dirs = append(dirs, filepath.Join(d, AppDirName))
	}
	return dirs
}

// StateDir returns the directory holding runtime state such as the log file.
// XDG_STATE_HOME is read on every call so tests can redirect it.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", AppDirName)
}

// LogFilePath returns the full path of the log file
func LogFilePath() string {
	dir := StateDir()
	if dir == "" {
		return LogFileName
	}
	return filepath.Join(dir, LogFileName)
}

// FindThemeFile returns the first existing theme file across the search
// directories, or "" when there is none
func FindThemeFile() string {
	for _, dir := range ConfigSearchDirs() {
		for _, name := range ThemeFileNames {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p
			}
		}
	}
	return ""
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user forms are left alone
	return path
}
