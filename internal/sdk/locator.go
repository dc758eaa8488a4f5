package sdk

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/blang/semver"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/paths"
	"github.com/ellemenno/loomtasks/internal/platform"
)

// Names of the fixed directories and executables inside an SDK.
const (
	binDir   = "bin"
	toolsDir = "tools"
	libsDir  = "libs"

	RunnerName   = "loomexec"
	CompilerName = "lsc"
	PlayerName   = "LoomPlayer"
)

// Locator resolves SDK paths beneath a home directory.
type Locator struct {
	Home string
}

// NewLocator returns a Locator rooted at the user's home directory.
func NewLocator() (*Locator, error) {
	home, err := paths.ResolveHome()
	if err != nil {
		return nil, err
	}
	return &Locator{Home: home}, nil
}

// Root returns <home>/.loom/sdks/<version>, or the sdks directory itself
// when version is empty.
func (l *Locator) Root(version string) string {
	dir := paths.SDKsDir(l.Home)
	if version == "" {
		return dir
	}
	return filepath.Join(dir, version)
}

func (l *Locator) hostDir(version string, id platform.Identity) string {
	return filepath.Join(l.Root(version), binDir, id.Label())
}

// Bin returns the directory holding the player for the given host.
func (l *Locator) Bin(version string, id platform.Identity) string {
	return filepath.Join(l.hostDir(version, id), binDir)
}

// Tools returns the directory holding loomexec and lsc for the given host.
func (l *Locator) Tools(version string, id platform.Identity) string {
	return filepath.Join(l.hostDir(version, id), toolsDir)
}

// Libs returns the directory of .loomlib files shipped with the SDK.
func (l *Locator) Libs(version string) string {
	return filepath.Join(l.Root(version), libsDir)
}

// Layout is a snapshot of every path of one SDK on one host.
type Layout struct {
	Version  string
	Platform platform.Identity

	Root     string
	BinDir   string
	ToolsDir string
	LibsDir  string

	// Player is empty on hosts without a known player.
	Player   string
	Compiler string
	Runner   string
}

// Layout computes the full layout for version on id.
func (l *Locator) Layout(version string, id platform.Identity) Layout {
	lay := Layout{
		Version:  version,
		Platform: id,
		Root:     l.Root(version),
		BinDir:   l.Bin(version, id),
		ToolsDir: l.Tools(version, id),
		LibsDir:  l.Libs(version),
	}
	lay.Compiler = filepath.Join(lay.ToolsDir, CompilerName)
	lay.Runner = filepath.Join(lay.ToolsDir, RunnerName)
	lay.Player = playerPath(lay.BinDir, id.OS)
	return lay
}

// Exists reports whether the SDK root for version is a directory.
func (l *Locator) Exists(version string) bool {
	if version == "" {
		return false
	}
	info, err := os.Stat(l.Root(version))
	return err == nil && info.IsDir()
}

// Require returns the SDK root for version, or ErrSDKNotFound when it is
// not installed.
func (l *Locator) Require(version string) (string, error) {
	if version == "" {
		return "", errors.ErrNoSDKVersion
	}
	if !l.Exists(version) {
		return "", errors.Wrapf(errors.ErrSDKNotFound, "%s (looked in %s)", version, l.Root(version))
	}
	return l.Root(version), nil
}

// Installed lists the SDK versions present under the sdks directory.
// Semantic versions sort numerically and before named builds such as
// "sprint34", which sort lexically. A missing directory yields no versions.
func (l *Locator) Installed() ([]string, error) {
	entries, err := os.ReadDir(l.Root(""))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "listing installed sdks")
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	slices.SortFunc(versions, compareVersions)
	return versions, nil
}

func compareVersions(a, b string) int {
	va, errA := semver.ParseTolerant(a)
	vb, errB := semver.ParseTolerant(b)
	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
