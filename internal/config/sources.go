package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigNames are the config file names looked up in the working directory.
var ProjectConfigNames = []string{AppName + ".toml", "." + AppName + ".toml"}

// FindProjectConfigFile returns the first project config file in dir, or "".
func FindProjectConfigFile(dir string) string {
	for _, name := range ProjectConfigNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// userConfigCandidates lists user-level config paths in lookup order:
// ~/.task-cli/config.toml, then task-cli/config.toml under the OS config dir.
func userConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+AppName, "config.toml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, AppName, "config.toml"))
	}
	return paths
}

// findUserConfigFile returns the first existing user config file, or "".
func findUserConfigFile() string {
	for _, p := range userConfigCandidates() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
