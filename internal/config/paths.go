package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveStoragePath turns a user-supplied storage path into an absolute
// task file path. Relative paths are joined to workDir. An existing
// directory, or a missing path without a file extension, gets
// DefaultStorageFile appended. An existing file is used as is.
func ResolveStoragePath(p, workDir string) string {
	p = expandPath(strings.TrimSpace(p))
	if p == "" {
		p = DefaultStorageFile
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(workDir, p)
	}
	p = filepath.Clean(p)

	if info, err := os.Stat(p); err == nil {
		if info.IsDir() {
			return filepath.Join(p, DefaultStorageFile)
		}
		return p
	}
	if filepath.Ext(p) == "" {
		return filepath.Join(p, DefaultStorageFile)
	}
	return p
}

// expandPath expands $VAR references and a leading ~ in a storage path.
// A ~\ prefix is only honored on Windows.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p != "~" && !strings.HasPrefix(p, "~/") && !(runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`)) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
