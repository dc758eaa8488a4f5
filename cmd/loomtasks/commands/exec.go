package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/paths"
)

func init() {
	rootCmd.AddCommand(runCmd, launchCmd, compileCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [-- args...]",
	Short: "Run bin/Main.loom with the SDK's loomexec",
	Long: `Run the compiled program from the project root with the selected SDK's
loomexec. Extra arguments are passed through to the program.`,
	Example: `  loomtasks run
  loomtasks run -- --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}
		v, err := p.requireSDK()
		if err != nil {
			return err
		}
		if err := requireMainBinary(p.Root); err != nil {
			return err
		}
		p.runner(cmd).TryOrFail(cmd.Context(),
			p.Locator.RunnerCommand(v, p.Platform, args...),
			"unable to run "+paths.MainBinaryName+" with loomexec")
		return nil
	},
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start the Loom player on bin/Main.loom",
	Long: `Start the selected SDK's player from the project root. The player is
available on osx and windows hosts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}
		v, err := p.requireSDK()
		if err != nil {
			return err
		}
		if err := requireMainBinary(p.Root); err != nil {
			return err
		}
		line, err := p.Locator.Launcher(v, p.Platform)
		if err != nil {
			return errors.NewUserError(err, "launch is available on osx and windows; try: loomtasks run")
		}
		p.runner(cmd).TryOrFail(cmd.Context(), line, "unable to launch the loom player")
		return nil
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile [-- args...]",
	Short: "Compile the project with the SDK's lsc",
	Long: `Run the selected SDK's lsc compiler in the project root. Extra
arguments are passed through to lsc.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProject(cmd)
		if err != nil {
			return err
		}
		v, err := p.requireSDK()
		if err != nil {
			return err
		}
		p.runner(cmd).TryOrFail(cmd.Context(),
			p.Locator.CompilerCommand(v, p.Platform, args...),
			"unable to compile with lsc")
		return nil
	},
}

func requireMainBinary(root string) error {
	bin := paths.MainBinary(root)
	if _, err := os.Stat(bin); err != nil {
		return errors.NewUserError(errors.Newf("%s not found", bin), "run: loomtasks compile")
	}
	return nil
}
