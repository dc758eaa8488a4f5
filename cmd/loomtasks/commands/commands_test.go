package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellemenno/loomtasks/internal/cli/prompt"
	"github.com/ellemenno/loomtasks/internal/doctor"
	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/platform"
)

var fakeTools = map[string]string{
	"loomexec": "#!/bin/sh\necho \"loomexec $*\"\n",
	"lsc":      "#!/bin/sh\necho \"lsc $*\"\n",
}

func TestLibNameFor(t *testing.T) {
	tests := map[string]string{
		"/src/Foo":         "Foo",
		"/src/loom-foo":    "LoomFoo",
		"/src/my_lib.v2":   "My_libV2",
		"/src/2d-graphics": "Lib2dGraphics",
	}
	for dir, want := range tests {
		assert.Equal(t, want, libNameFor(dir), dir)
	}
}

func TestInit(t *testing.T) {
	e := newEnv(t)

	res := e.run("init", "--lib", "Bar", "--sdk", "sprint34")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "wrote "+filepath.Join(e.project, ".loomtasks.yml"))
	assert.Contains(t, res.out, "(sdk sprint34)")

	settings := e.read(".loomtasks.yml")
	assert.Contains(t, settings, "lib_name: Bar")
	assert.Contains(t, settings, "lib_version_file: lib/src/Bar.ls")

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(e.read("loom.config")), &cfg))
	assert.Equal(t, "sprint34", cfg["sdk_version"])

	t.Run("refuses to overwrite", func(t *testing.T) {
		res := e.run("init", "--lib", "Baz")
		require.Error(t, res.err)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err))
	})

	t.Run("force keeps existing loom.config", func(t *testing.T) {
		res := e.run("init", "--lib", "Baz", "--force", "--sdk", "sprint35")
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "kept")
		assert.Contains(t, e.read(".loomtasks.yml"), "lib_name: Baz")
		assert.Contains(t, e.read("loom.config"), "sprint34")
	})

	t.Run("rejects invalid library name", func(t *testing.T) {
		res := e.run("init", "--lib", "not a name", "--force")
		assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err))
	})
}

func TestSDKList(t *testing.T) {
	e := newEnv(t)

	res := e.run("sdk", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "no sdks installed")

	e.library()
	e.installSDK("sprint33", nil)
	e.installSDK("sprint34", nil)
	e.installSDK("1.2.0", nil)

	res = e.run("sdk", "list")
	require.NoError(t, res.err)
	assert.Equal(t, "  1.2.0\n* sprint33\n  sprint34\n", res.out)
}

func TestSDKPath(t *testing.T) {
	e := newEnv(t)
	e.library()

	res := e.run("sdk", "path")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, errors.ErrSDKNotFound)

	e.installSDK("sprint33", nil)
	id := platform.Identity{OS: platform.Linux, Arch: platform.X64}

	tests := []struct {
		part string
		want string
	}{
		{"root", e.locator.Root("sprint33")},
		{"tools", e.locator.Tools("sprint33", id)},
		{"bin", e.locator.Bin("sprint33", id)},
		{"libs", e.locator.Libs("sprint33")},
	}
	for _, tt := range tests {
		t.Run(tt.part, func(t *testing.T) {
			res := e.run("sdk", "path", "--part", tt.part)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want+"\n", res.out)
		})
	}

	res = e.run("sdk", "path", "--part", "docs")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err))
}

func TestSDKPath_FlagOverridesProject(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.installSDK("sprint34", nil)

	res := e.run("sdk", "path", "--sdk", "sprint34")
	require.NoError(t, res.err)
	assert.Equal(t, e.locator.Root("sprint34")+"\n", res.out)
}

func TestSDKUse(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.installSDK("sprint33", nil)
	e.installSDK("sprint34", nil)

	t.Run("named version", func(t *testing.T) {
		res := e.run("sdk", "use", "sprint34")
		require.NoError(t, res.err)
		assert.Equal(t, "{\n  \"sdk_version\": \"sprint34\"\n}\n", e.read("loom.config"))
	})

	t.Run("missing version", func(t *testing.T) {
		res := e.run("sdk", "use", "sprint99")
		assert.ErrorIs(t, res.err, errors.ErrSDKNotFound)

		res = e.run("sdk", "use", "sprint99", "--force")
		require.NoError(t, res.err)
		assert.Contains(t, e.read("loom.config"), "sprint99")
	})

	t.Run("interactive", func(t *testing.T) {
		var prompted bytes.Buffer
		orig := newSelector
		t.Cleanup(func() { newSelector = orig })
		newSelector = func() *prompt.Selector {
			return prompt.NewSelectorWithIO(strings.NewReader("1\n"), &prompted)
		}

		res := e.run("sdk", "use")
		require.NoError(t, res.err)
		assert.Contains(t, prompted.String(), "Installed SDKs:")
		assert.Contains(t, e.read("loom.config"), "sprint33")
	})
}

func TestSDKWhich(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.installSDK("sprint33", fakeTools)

	res := e.run("sdk", "which", "lsc")
	require.NoError(t, res.err)
	id := platform.Identity{OS: platform.Linux, Arch: platform.X64}
	assert.Equal(t, filepath.Join(e.locator.Tools("sprint33", id), "lsc")+"\n", res.out)

	res = e.run("sdk", "which", "definitely-not-a-loom-tool")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err))
}

func TestLibVersion(t *testing.T) {
	e := newEnv(t)
	e.library()

	res := e.run("lib", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "1.0.0\n", res.out)
}

func TestLibVersionSet_UpdatesReadme(t *testing.T) {
	e := newEnv(t)
	e.library()

	res := e.run("lib", "version", "set", "1.4.0")
	require.NoError(t, res.err)

	assert.Contains(t, e.read("lib/src/Foo.ls"), "public static const version:String = '1.4.0';")
	readme := e.read("README.md")
	assert.Contains(t, readme, "/download/v1.4.0/Foo-sprint33.loomlib")
	assert.Contains(t, readme, "~/.loom/sdks/sprint33/libs/Foo.loomlib")

	res = e.run("lib", "version", "set", "1.4")
	assert.ErrorIs(t, res.err, errors.ErrInvalidVersion)
}

func TestLibVersionBump(t *testing.T) {
	tests := []struct {
		part string
		want string
	}{
		{"major", "2.0.0"},
		{"minor", "1.1.0"},
		{"patch", "1.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.part, func(t *testing.T) {
			e := newEnv(t)
			e.library()

			res := e.run("lib", "version", "bump", tt.part)
			require.NoError(t, res.err)
			assert.Contains(t, res.out, "1.0.0 -> "+tt.want)
			assert.Contains(t, e.read("README.md"), "/download/v"+tt.want+"/")
		})
	}
}

func TestLibVersionBump_SkipReadmeWithSDKOverride(t *testing.T) {
	e := newEnv(t)
	e.library()

	res := e.run("lib", "version", "bump", "patch", "--skip-readme")
	require.NoError(t, res.err)
	assert.Equal(t, fooReadme, e.read("README.md"))

	res = e.run("lib", "version", "bump", "minor", "--sdk", "sprint34")
	require.NoError(t, res.err)
	readme := e.read("README.md")
	assert.Contains(t, readme, "/download/v1.1.0/Foo-sprint34.loomlib")
	assert.Contains(t, readme, "~/.loom/sdks/sprint34/libs/Foo.loomlib")
}

func TestLibVersionBump_NoSDKLeavesSourceUnchanged(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.write("loom.config", "{}\n")

	for range 2 {
		res := e.run("lib", "version", "bump", "patch")
		require.Error(t, res.err)
		assert.ErrorIs(t, res.err, errors.ErrNoSDKVersion)
	}
	assert.Equal(t, fooSource, e.read("lib/src/Foo.ls"))
	assert.Equal(t, fooReadme, e.read("README.md"))

	res := e.run("lib", "version", "bump", "patch", "--skip-readme")
	require.NoError(t, res.err)
	assert.Contains(t, e.read("lib/src/Foo.ls"), "'1.0.1'")
}

func TestReadmeSync(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.write("lib/src/Foo.ls", strings.Replace(fooSource, "1.0.0", "1.2.3", 1))

	res := e.run("readme", "sync", "--check")
	require.Error(t, res.err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err))
	assert.Contains(t, res.out, "README.md:3:")
	assert.Equal(t, fooReadme, e.read("README.md"), "check must not rewrite")

	res = e.run("readme", "sync")
	require.NoError(t, res.err)
	assert.Contains(t, e.read("README.md"), "/download/v1.2.3/Foo-sprint33.loomlib")

	res = e.run("readme", "sync", "--check")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "is up to date")
}

func TestConfigCommands(t *testing.T) {
	e := newEnv(t)
	e.library()

	res := e.run("config", "get", "sdk_version")
	require.NoError(t, res.err)
	assert.Equal(t, "sprint33\n", res.out)

	res = e.run("config", "set", "display.width", "640")
	require.NoError(t, res.err)
	res = e.run("config", "set", "app_id", "com.example.foo")
	require.NoError(t, res.err)

	res = e.run("config", "get", "display.width")
	require.NoError(t, res.err)
	assert.Equal(t, "640\n", res.out)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(e.read("loom.config")), &cfg))
	assert.Equal(t, map[string]any{"width": float64(640)}, cfg["display"])

	res = e.run("config", "list", "--format", "toml")
	require.NoError(t, res.err)
	assert.Regexp(t, `sdk_version = ['"]sprint33['"]`, res.out)
	assert.Contains(t, res.out, "[display]")

	res = e.run("config", "list", "-f", "yaml")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "app_id: com.example.foo")

	res = e.run("config", "list", "-f", "ini")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err))

	res = e.run("config", "get", "missing.key")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err))
}

func TestConfigSet_NullDocument(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.write("loom.config", "null\n")

	res := e.run("config", "set", "sdk_version", "sprint34")
	require.NoError(t, res.err)
	assert.Equal(t, "{\n  \"sdk_version\": \"sprint34\"\n}\n", e.read("loom.config"))
}

func TestConfigGlobal(t *testing.T) {
	e := newEnv(t)

	res := e.run("config", "get", "-g", "sdk_version")
	assert.ErrorIs(t, res.err, errors.ErrConfigMissing)

	res = e.run("config", "set", "--global", "sdk_version", "sprint34")
	require.NoError(t, res.err)

	data, err := os.ReadFile(filepath.Join(e.home, ".loom", "loom.config"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sdk_version": "sprint34"`)
}

func TestDoctor(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.installSDK("sprint33", fakeTools)
	e.write("bin/Main.loom", "")

	res := e.run("doctor")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Summary:")
	assert.Contains(t, res.out, "0 warnings, 0 errors")

	t.Run("stale readme warns and fixes", func(t *testing.T) {
		e.write("lib/src/Foo.ls", strings.Replace(fooSource, "1.0.0", "1.1.0", 1))

		res := e.run("doctor")
		require.Error(t, res.err)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err))
		assert.Contains(t, res.out, "[library] readme")

		res = e.run("doctor", "--fix")
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "fixed ")
		assert.Contains(t, e.read("README.md"), "/download/v1.1.0/")
	})

	t.Run("json reports errors", func(t *testing.T) {
		res := e.run("doctor", "--json", "--sdk", "sprint99")
		require.Error(t, res.err)
		assert.Equal(t, errors.ExitSystem, errors.ExitCode(res.err))

		var report struct {
			Summary doctor.Summary `json:"summary"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.out), &report))
		assert.Positive(t, report.Summary.Errors)
	})

	t.Run("json and all conflict", func(t *testing.T) {
		res := e.run("doctor", "--json", "--all")
		assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err))
	})
}

func TestRun(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.installSDK("sprint33", fakeTools)

	res := e.run("run")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(res.err), "Main.loom not built yet")

	e.write("bin/Main.loom", "")
	res = e.run("run", "--", "--seed", "42")
	require.NoError(t, res.err)
	assert.False(t, res.exited)
	id := platform.Identity{OS: platform.Linux, Arch: platform.X64}
	tool := filepath.Join(e.locator.Tools("sprint33", id), "loomexec")
	assert.Equal(t, tool+" // --seed 42\nloomexec // --seed 42\n", res.out)
}

func TestRun_FailureExits(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.installSDK("sprint33", map[string]string{
		"loomexec": "#!/bin/sh\nexit 3\n",
	})
	e.write("bin/Main.loom", "")

	res := e.run("run")
	require.NoError(t, res.err)
	assert.True(t, res.exited)
	assert.Equal(t, 1, res.exitCode)
	assert.Contains(t, res.out, "✘ unable to run Main.loom with loomexec")
}

func TestCompile(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.installSDK("sprint33", fakeTools)

	res := e.run("compile")
	require.NoError(t, res.err)
	id := platform.Identity{OS: platform.Linux, Arch: platform.X64}
	assert.Equal(t, filepath.Join(e.locator.Tools("sprint33", id), "lsc")+"\nlsc \n", res.out)
}

func TestLaunch_UnsupportedOnLinux(t *testing.T) {
	e := newEnv(t)
	e.library()
	e.installSDK("sprint33", fakeTools)
	e.write("bin/Main.loom", "")

	res := e.run("launch")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, errors.ErrUnsupportedPlatform)
}
