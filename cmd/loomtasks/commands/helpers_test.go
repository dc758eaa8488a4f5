package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ellemenno/loomtasks/internal/platform"
	"github.com/ellemenno/loomtasks/internal/sdk"
)

const fooSource = "package foo\n{\n    public class Foo\n    {\n        public static const version:String = '1.0.0';\n    }\n}\n"

const fooReadme = "# Foo\n\n" +
	"https://github.com/dev/foo/releases/download/v1.0.0/Foo-sprint33.loomlib\n" +
	"~/.loom/sdks/sprint33/libs/Foo.loomlib\n"

// env is an isolated home directory plus a Foo library project.
type env struct {
	t       *testing.T
	home    string
	project string
	locator *sdk.Locator
}

func newEnv(t *testing.T) *env {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("LOOMTASKS_CONFIG_DIR", t.TempDir())
	t.Setenv("LOOMTASKS_SDK_VERSION", "")
	t.Setenv("LOOMTASKS_DEBUG", "")

	e := &env{t: t, home: home, project: t.TempDir(), locator: &sdk.Locator{Home: home}}
	return e
}

func (e *env) write(rel, content string) string {
	e.t.Helper()
	path := filepath.Join(e.project, rel)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e *env) read(rel string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.project, rel))
	require.NoError(e.t, err)
	return string(data)
}

// library writes a Foo project targeting sprint33.
func (e *env) library() {
	e.write(".loomtasks.yml", "lib_name: Foo\n")
	e.write("lib/src/Foo.ls", fooSource)
	e.write("README.md", fooReadme)
	e.write("loom.config", "{\n  \"sdk_version\": \"sprint33\"\n}\n")
}

// installSDK creates an SDK directory with the given tools for linux-x64.
func (e *env) installSDK(version string, tools map[string]string) {
	e.t.Helper()
	id := platform.Identity{OS: platform.Linux, Arch: platform.X64}
	require.NoError(e.t, os.MkdirAll(e.locator.Libs(version), 0o755))
	dir := e.locator.Tools(version, id)
	require.NoError(e.t, os.MkdirAll(dir, 0o755))
	for name, script := range tools {
		require.NoError(e.t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
	}
}

type result struct {
	out      string
	err      error
	exitCode int
	exited   bool
}

// run executes the root command with args in the project directory.
func (e *env) run(args ...string) result {
	e.t.Helper()
	resetFlags()

	var res result
	exitFunc = func(code int) {
		res.exitCode = code
		res.exited = true
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"-C", e.project, "--platform", "linux-x64"}, args...))

	res.err = rootCmd.ExecuteContext(e.t.Context())
	res.out = out.String()
	return res
}

// resetFlags restores flag variables, which cobra leaves set between runs.
func resetFlags() {
	verbosity, quiet = 0, false
	logFormat, logFile = "text", ""
	sdkFlag, projectDir, platformFlag = "", ".", ""
	initLib, initForce = "", false
	sdkPathPart, sdkUseForce = "root", false
	libSkipReadme, readmeCheckOnly = false, false
	configGlobal, configFormat = false, "json"
	doctorJSON, doctorAll, doctorFix = false, false, false
	exitFunc = os.Exit
}
