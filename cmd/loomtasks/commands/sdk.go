package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ellemenno/loomtasks/internal/cli/prompt"
	"github.com/ellemenno/loomtasks/internal/config"
	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/runner"
	"github.com/ellemenno/loomtasks/internal/sdk"
)

var (
	sdkPathPart string
	sdkUseForce bool

	// newSelector is replaced in tests.
	newSelector = prompt.NewSelector
)

func init() {
	sdkPathCmd.Flags().StringVar(&sdkPathPart, "part", "root", "which directory: root, bin, tools, libs")
	sdkUseCmd.Flags().BoolVar(&sdkUseForce, "force", false, "select a version that is not installed")

	sdkCmd.AddCommand(sdkListCmd, sdkPathCmd, sdkUseCmd, sdkWhichCmd)
	rootCmd.AddCommand(sdkCmd)
}

var sdkCmd = &cobra.Command{
	Use:   "sdk",
	Short: "Inspect and select Loom SDKs",
	Long: `Inspect the Loom SDKs installed under ~/.loom/sdks and choose the one
this project builds against.`,
	RunE: runSDKList,
}

var sdkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed SDKs",
	Long:  `List installed SDK versions. The version in use is marked with *.`,
	Args:  cobra.NoArgs,
	RunE:  runSDKList,
}

var sdkPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print a directory of the selected SDK",
	Example: `  loomtasks sdk path
  loomtasks sdk path --part tools --platform windows-x86`,
	Args: cobra.NoArgs,
	RunE: runSDKPath,
}

var sdkUseCmd = &cobra.Command{
	Use:   "use [version]",
	Short: "Select the SDK in the project's loom.config",
	Long: `Write sdk_version to the project's loom.config.

Without a version, choose from the installed SDKs interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSDKUse,
}

var sdkWhichCmd = &cobra.Command{
	Use:   "which <program>",
	Short: "Locate a program in the SDK tools or on PATH",
	Long: `Print the path of program, looking first in the selected SDK's tools
and bin directories and then on PATH (honoring PATHEXT on Windows).`,
	Args: cobra.ExactArgs(1),
	RunE: runSDKWhich,
}

func runSDKList(cmd *cobra.Command, _ []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	installed, err := p.Locator.Installed()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(installed) == 0 {
		fmt.Fprintf(out, "no sdks installed in %s\n", p.Locator.Root(""))
		return nil
	}

	current, _, _ := p.sdkVersion()
	for _, v := range installed {
		mark := " "
		if v == current {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %s\n", mark, v)
	}
	return nil
}

func runSDKPath(cmd *cobra.Command, _ []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	v, err := p.requireSDK()
	if err != nil {
		return err
	}

	var dir string
	switch sdkPathPart {
	case "root":
		dir = p.Locator.Root(v)
	case "bin":
		dir = p.Locator.Bin(v, p.Platform)
	case "tools":
		dir = p.Locator.Tools(v, p.Platform)
	case "libs":
		dir = p.Locator.Libs(v)
	default:
		return errors.NewUserError(errors.Newf("unknown part %q", sdkPathPart), "use root, bin, tools or libs")
	}
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}

func runSDKUse(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	var v string
	if len(args) == 1 {
		v = args[0]
		if !sdkUseForce && !p.Locator.Exists(v) {
			return errors.NewUserError(
				errors.Wrapf(errors.ErrSDKNotFound, "%s", v),
				"use --force to select it anyway, or run: loomtasks sdk list")
		}
	} else {
		installed, err := p.Locator.Installed()
		if err != nil {
			return err
		}
		current, _, _ := p.sdkVersion()
		v, err = newSelector().Select("Installed SDKs", installed, current, func(version string) string {
			return describeLayout(p.Locator.Layout(version, p.Platform))
		})
		switch {
		case errors.Is(err, prompt.ErrNoChoices):
			return errors.NewUserError(errors.Wrap(errors.ErrSDKNotFound, "no sdks installed"),
				"install an sdk under "+p.Locator.Root(""))
		case err != nil:
			return errors.NewUserError(err, "")
		}
	}

	doc, err := config.ReadJSON(p.configFile())
	if err != nil && !errors.Is(err, errors.ErrConfigMissing) {
		return errors.NewConfigError(err)
	}
	if doc == nil {
		doc = config.Document{}
	}
	if err := doc.Set(config.KeySDKVersion, v); err != nil {
		return err
	}
	if err := config.WriteJSON(p.configFile(), doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sdk_version = %s in %s\n", v, p.configFile())
	return nil
}

func describeLayout(lay sdk.Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s for %s\n\n", lay.Version, lay.Platform.Label())
	for _, row := range [][2]string{
		{"root", lay.Root},
		{"tools", lay.ToolsDir},
		{"libs", lay.LibsDir},
		{"player", lay.Player},
	} {
		if row[1] == "" {
			continue
		}
		state := "missing"
		if _, err := os.Stat(row[1]); err == nil {
			state = "ok"
		}
		fmt.Fprintf(&b, "%-6s %s (%s)\n", row[0], row[1], state)
	}
	return b.String()
}

func runSDKWhich(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	name := args[0]

	if v, _, err := p.sdkVersion(); err == nil && p.Locator.Exists(v) {
		for _, dir := range []string{p.Locator.Tools(v, p.Platform), p.Locator.Bin(v, p.Platform)} {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				fmt.Fprintln(cmd.OutOrStdout(), candidate)
				return nil
			}
		}
	}

	path, err := runner.LookPath(name)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
