package sdk

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellemenno/loomtasks/internal/errors"
)

func TestToolCommand_InsertsPlaceholder(t *testing.T) {
	l := &Locator{Home: "/home/dev"}
	tools := l.Tools("sprint34", linux64)

	assert.Equal(t,
		filepath.Join(tools, "loomexec")+" //",
		l.RunnerCommand("sprint34", linux64))
	assert.Equal(t,
		filepath.Join(tools, "loomexec")+" // --verbose",
		l.RunnerCommand("sprint34", linux64, "--verbose"))
	assert.Equal(t,
		filepath.Join(tools, "lt")+" // a b",
		l.ToolCommand("sprint34", linux64, "lt", "a", "b"))
}

func TestCompilerCommand_NoPlaceholder(t *testing.T) {
	l := &Locator{Home: "/home/dev"}
	lsc := filepath.Join(l.Tools("1.2.3", osx64), "lsc")

	assert.Equal(t, lsc, l.CompilerCommand("1.2.3", osx64))
	assert.Equal(t, lsc+" Main.build", l.CompilerCommand("1.2.3", osx64, "Main.build"))
}

func TestCommands_QuotePathsWithSpaces(t *testing.T) {
	l := &Locator{Home: "/home/loom dev"}

	line := l.CompilerCommand("1.2.3", linux64)

	assert.Equal(t, "'"+filepath.Join(l.Tools("1.2.3", linux64), "lsc")+"'", line)
}

func TestLauncher(t *testing.T) {
	l := &Locator{Home: "/home/dev"}

	t.Run("osx runs the app bundle executable", func(t *testing.T) {
		line, err := l.Launcher("sprint34", osx64)
		require.NoError(t, err)
		assert.Equal(t,
			filepath.Join(l.Bin("sprint34", osx64), "LoomPlayer.app", "Contents", "MacOS", "LoomPlayer"),
			line)
	})

	t.Run("windows starts the player with the current process id", func(t *testing.T) {
		line, err := l.Launcher("sprint34", win64)
		require.NoError(t, err)
		want := fmt.Sprintf(`start "Loom" %s ProcessID %d`,
			filepath.Join(l.Bin("sprint34", win64), "LoomPlayer.exe"), os.Getpid())
		assert.Equal(t, want, line)
	})

	t.Run("linux is unsupported", func(t *testing.T) {
		_, err := l.Launcher("sprint34", linux64)
		assert.True(t, errors.Is(err, errors.ErrUnsupportedPlatform))
		assert.Contains(t, err.Error(), "linux-x64")
	})
}
