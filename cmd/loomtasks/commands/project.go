package commands

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ellemenno/loomtasks/internal/config"
	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/logging"
	"github.com/ellemenno/loomtasks/internal/paths"
	"github.com/ellemenno/loomtasks/internal/platform"
	"github.com/ellemenno/loomtasks/internal/runner"
	"github.com/ellemenno/loomtasks/internal/sdk"
)

// SDK resolution sources, reported by `sdk which`.
const (
	sourceFlag     = "--sdk flag"
	sourceProject  = "loom.config"
	sourceSettings = "sdk_version setting"
)

// project is everything a command needs to know about the library being
// worked on. It is rebuilt for every invocation.
type project struct {
	Root     string
	Settings *config.Settings
	Locator  *sdk.Locator
	Platform platform.Identity

	log *slog.Logger
}

// loadProject resolves the project root, reads settings and detects the host.
func loadProject(cmd *cobra.Command) (*project, error) {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	root, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving project directory %q", projectDir)
	}

	if _, err := config.Load(""); err != nil {
		return nil, errors.NewConfigError(err)
	}
	settings, err := config.MergeProject(root)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	locator, err := sdk.NewLocator()
	if err != nil {
		return nil, errors.NewSystemError(err, "set HOME to your home directory")
	}

	id, err := hostPlatform(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug("project loaded", "root", root, "platform", id.Label(), "settings", config.ConfigFileUsed())
	return &project{Root: root, Settings: settings, Locator: locator, Platform: id, log: log}, nil
}

func hostPlatform(ctx context.Context) (platform.Identity, error) {
	if platformFlag != "" {
		id, ok := platform.Parse(platformFlag)
		if !ok {
			return platform.Identity{}, errors.NewUserError(
				errors.Newf("invalid platform %q", platformFlag),
				"use <os>-<arch>, e.g. osx-x64, windows-x86, linux-x64")
		}
		return id, nil
	}
	return platform.Detect(ctx, platform.ExecProber{}), nil
}

// sdkVersion picks the SDK version: --sdk, then the project's loom.config,
// then the sdk_version setting.
func (p *project) sdkVersion() (string, string, error) {
	if sdkFlag != "" {
		return sdkFlag, sourceFlag, nil
	}

	doc, err := config.ReadJSON(p.configFile())
	switch {
	case err == nil:
		if v, ok := doc.GetString(config.KeySDKVersion); ok && v != "" {
			return v, sourceProject, nil
		}
	case !errors.Is(err, errors.ErrConfigMissing):
		return "", "", errors.NewConfigError(err)
	}

	if p.Settings.SDKVersion != "" {
		return p.Settings.SDKVersion, sourceSettings, nil
	}

	return "", "", errors.NewUserError(errors.ErrNoSDKVersion,
		"pass --sdk, or run: loomtasks sdk use <version>")
}

// requireSDK resolves the SDK version and verifies it is installed.
func (p *project) requireSDK() (string, error) {
	v, source, err := p.sdkVersion()
	if err != nil {
		return "", err
	}
	if _, err := p.Locator.Require(v); err != nil {
		return "", errors.NewUserError(err, "run: loomtasks sdk list")
	}
	p.log.Debug("using sdk", "version", v, "source", source)
	return v, nil
}

func (p *project) configFile() string {
	return paths.ProjectConfigFile(p.Root)
}

func (p *project) versionFile() (string, error) {
	f := p.Settings.VersionFile(p.Root)
	if f == "" {
		return "", errors.NewUserError(errors.New("no library version file configured"),
			"set lib_name or lib_version_file in "+paths.ProjectSettingsFile+", or run: loomtasks init")
	}
	return f, nil
}

// runner returns a runner that works in the project root and writes to the
// command's streams.
func (p *project) runner(cmd *cobra.Command) *runner.Runner {
	r := runner.New()
	r.Stdout = cmd.OutOrStdout()
	r.Stderr = cmd.ErrOrStderr()
	r.Dir = p.Root
	r.Exit = exitFunc
	return r
}
