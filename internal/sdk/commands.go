package sdk

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/platform"
	"github.com/ellemenno/loomtasks/internal/runner"
)

// ToolPlaceholder is passed to loomexec ahead of the real arguments; the
// tool discards its first argument.
const ToolPlaceholder = "//"

// ToolCommand builds the command line for an SDK tool. The placeholder
// argument is always inserted.
func (l *Locator) ToolCommand(version string, id platform.Identity, name string, args ...string) string {
	tool := filepath.Join(l.Tools(version, id), name)
	return runner.Join(append([]string{tool, ToolPlaceholder}, args...)...)
}

// RunnerCommand runs bin/Main.loom from the working directory with loomexec.
func (l *Locator) RunnerCommand(version string, id platform.Identity, args ...string) string {
	return l.ToolCommand(version, id, RunnerName, args...)
}

// CompilerCommand invokes lsc. Unlike loomexec it takes no placeholder.
func (l *Locator) CompilerCommand(version string, id platform.Identity, args ...string) string {
	compiler := filepath.Join(l.Tools(version, id), CompilerName)
	return runner.Join(append([]string{compiler}, args...)...)
}

// PlayerTitle names the console window the Windows player opens in.
const PlayerTitle = "Loom"

// launchers maps an OS to the command line that starts the player.
var launchers = map[string]func(binDir string) string{
	platform.OSX: func(binDir string) string {
		return runner.Quote(playerPath(binDir, platform.OSX))
	},
	platform.Windows: func(binDir string) string {
		return `start "` + PlayerTitle + `" ` + runner.Join(
			playerPath(binDir, platform.Windows),
			"ProcessID", strconv.Itoa(os.Getpid()),
		)
	},
}

// Launcher returns the command line that starts the Loom player of version
// on id. Hosts without a player yield ErrUnsupportedPlatform.
func (l *Locator) Launcher(version string, id platform.Identity) (string, error) {
	launch, ok := launchers[id.OS]
	if !ok {
		return "", errors.Wrapf(errors.ErrUnsupportedPlatform, "no player for %s", id.Label())
	}
	return launch(l.Bin(version, id)), nil
}

func playerPath(binDir, hostOS string) string {
	switch hostOS {
	case platform.OSX:
		return filepath.Join(binDir, PlayerName+".app", "Contents", "MacOS", PlayerName)
	case platform.Windows:
		return filepath.Join(binDir, PlayerName+".exe")
	default:
		return ""
	}
}
