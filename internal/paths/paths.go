package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ellemenno/loomtasks/internal/errors"
)

// AppName is the directory name used for the tool's own settings.
const AppName = "loomtasks"

// Fixed names of the Loom layout.
const (
	LoomDirName    = ".loom"
	SDKsDirName    = "sdks"
	ConfigFileName = "loom.config"
	BinDirName     = "bin"
	MainBinaryName = "Main.loom"

	// ProjectSettingsFile holds per-project task settings.
	ProjectSettingsFile = ".loomtasks.yml"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
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

// LoomDir returns <home>/.loom.
func LoomDir(home string) string {
	return filepath.Join(home, LoomDirName)
}

// SDKsDir returns <home>/.loom/sdks, the parent of every installed SDK.
func SDKsDir(home string) string {
	return filepath.Join(LoomDir(home), SDKsDirName)
}

// GlobalConfigFile returns <home>/.loom/loom.config.
func GlobalConfigFile(home string) string {
	return filepath.Join(LoomDir(home), ConfigFileName)
}

// ProjectConfigFile returns <projectRoot>/loom.config.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(projectRoot, ConfigFileName)
}

// ProjectSettingsPath returns <projectRoot>/.loomtasks.yml.
func ProjectSettingsPath(projectRoot string) string {
	return filepath.Join(projectRoot, ProjectSettingsFile)
}

// MainBinary returns <projectRoot>/bin/Main.loom, the file the SDK runner and
// player load from the working directory.
func MainBinary(projectRoot string) string {
	return filepath.Join(projectRoot, BinDirName, MainBinaryName)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns <ConfigHome>/loomtasks.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}
