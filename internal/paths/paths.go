package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under XDG base directories.
const AppName = "modcheck"

// ModuleMarker is the file whose presence marks a module root.
const ModuleMarker = "metadata.json"

// ProjectDirName is the per-module configuration directory.
const ProjectDirName = ".modcheck"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrNoModuleRoot indicates no ancestor directory contains ModuleMarker.
	ErrNoModuleRoot = errors.New("no module root found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// UserConfigDir returns the user-level configuration directory.
// Returns: <ConfigHome>/modcheck/
func UserConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ProjectConfigDir returns the module-level configuration directory.
// Returns: <moduleRoot>/.modcheck/
func ProjectConfigDir(moduleRoot string) string {
	if moduleRoot == "" {
		return ""
	}
	return filepath.Join(moduleRoot, ProjectDirName)
}

// FindModuleRoot walks upward from start until it finds a directory
// containing ModuleMarker. It returns the absolute path of that directory.
func FindModuleRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(err, "resolving start directory")
	}

	for {
		info, err := os.Stat(filepath.Join(dir, ModuleMarker))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Wrapf(err, "checking %s", dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrapf(ErrNoModuleRoot, "searched upward from %s", start)
		}
		dir = parent
	}
}
