package commands

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ellemenno/loomtasks/internal/config"
	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/paths"
)

var (
	initLib   string
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initLib, "lib", "", "library name (default: project directory name)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing settings")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create project settings and loom.config",
	Long: `Create .loomtasks.yml naming the library and its version file, and a
loom.config selecting the SDK when none exists.

An existing loom.config is kept; only a missing sdk_version is filled in.`,
	Example: `  loomtasks init --lib Foo --sdk sprint34

See Also: loomtasks sdk use, loomtasks doctor`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// libNameFor derives a library name from a directory, e.g. "loom-foo" → "LoomFoo".
func libNameFor(dir string) string {
	var b strings.Builder
	for _, part := range nonIdent.Split(filepath.Base(dir), -1) {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	name := b.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "Lib" + name
	}
	return name
}

func runInit(cmd *cobra.Command, _ []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	settingsPath := paths.ProjectSettingsPath(p.Root)
	existing, err := config.ReadYAMLOrDefault(settingsPath)
	if err != nil {
		return errors.NewConfigError(err)
	}
	if len(existing) > 0 && !initForce {
		return errors.NewUserError(errors.Newf("%s already exists", settingsPath), "use --force to overwrite")
	}

	lib := initLib
	if lib == "" {
		lib = libNameFor(p.Root)
	}
	settings := config.Settings{
		Version:        1,
		LibName:        lib,
		LibVersionFile: filepath.ToSlash(filepath.Join("lib", "src", lib+".ls")),
		ReadmeFile:     config.DefaultReadmeFile,
	}
	if errs := config.Validate(&settings); len(errs) > 0 {
		return errors.NewUserError(errs[0], "pass a valid identifier with --lib")
	}

	doc := config.Document{
		config.KeyVersion:        settings.Version,
		config.KeyLibName:        settings.LibName,
		config.KeyLibVersionFile: settings.LibVersionFile,
		config.KeyReadmeFile:     settings.ReadmeFile,
	}
	if err := config.WriteYAML(settingsPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", settingsPath)

	loomConfig, err := config.ReadJSON(p.configFile())
	if err != nil && !errors.Is(err, errors.ErrConfigMissing) {
		return errors.NewConfigError(err)
	}
	if loomConfig == nil {
		loomConfig = config.Document{}
	}
	if sdk, ok := loomConfig.GetString(config.KeySDKVersion); ok && sdk != "" {
		fmt.Fprintf(out, "kept %s (sdk %s)\n", p.configFile(), sdk)
		return nil
	}

	sdk, _, err := p.sdkVersion()
	if err != nil {
		fmt.Fprintf(out, "no sdk selected; run: loomtasks sdk use\n")
		return nil
	}
	if err := loomConfig.Set(config.KeySDKVersion, sdk); err != nil {
		return err
	}
	if err := config.WriteJSON(p.configFile(), loomConfig); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s (sdk %s)\n", p.configFile(), sdk)
	return nil
}
