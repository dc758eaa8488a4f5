package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/readme"
	"github.com/ellemenno/loomtasks/internal/version"
)

var readmeCheckOnly bool

func init() {
	readmeSyncCmd.Flags().BoolVar(&readmeCheckOnly, "check", false,
		"report stale references without rewriting; fail if any")
	readmeCmd.AddCommand(readmeSyncCmd)
	rootCmd.AddCommand(readmeCmd)
}

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Maintain the library README",
}

var readmeSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Point README download and install references at the current version and SDK",
	Long: `Rewrite every release download URL
  .../download/v<version>/<lib>-<sdk>.loomlib
and every install path
  ~/.loom/sdks/<sdk>/libs/<lib>.loomlib
in the README to the library version and selected SDK.`,
	Args: cobra.NoArgs,
	RunE: runReadmeSync,
}

func runReadmeSync(cmd *cobra.Command, _ []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	file, err := p.versionFile()
	if err != nil {
		return err
	}
	v, err := version.Site{Path: file}.Read()
	if err != nil {
		return errors.NewUserError(err, "run: loomtasks doctor")
	}
	sdk, _, err := p.sdkVersion()
	if err != nil {
		return err
	}
	path := p.Settings.Readme(p.Root)
	out := cmd.OutOrStdout()

	if readmeCheckOnly {
		drift, err := readme.CheckFile(path, v, sdk)
		if err != nil {
			return err
		}
		for _, d := range drift {
			fmt.Fprintf(out, "%s:%d: %s (want %s)\n", path, d.Line, d.Found, d.Want)
		}
		if len(drift) > 0 {
			return errors.NewUserError(errors.Newf("%d stale reference(s)", len(drift)), "run: loomtasks readme sync")
		}
		fmt.Fprintf(out, "%s is up to date\n", path)
		return nil
	}

	changed, err := readme.SyncFile(path, v, sdk)
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintf(out, "%s: updated to %s / sdk %s\n", path, v, sdk)
	} else {
		fmt.Fprintf(out, "%s is up to date\n", path)
	}
	return nil
}
