package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/readme"
	"github.com/ellemenno/loomtasks/internal/version"
)

// libSkipReadme leaves the README alone when the version changes.
var libSkipReadme bool

func init() {
	libVersionCmd.PersistentFlags().BoolVar(&libSkipReadme, "skip-readme", false,
		"do not update README references")

	libVersionCmd.AddCommand(libVersionSetCmd, libVersionBumpCmd)
	libCmd.AddCommand(libVersionCmd)
	rootCmd.AddCommand(libCmd)
}

var libCmd = &cobra.Command{
	Use:   "lib",
	Short: "Manage the library",
}

var libVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the library version",
	Long: `Print the version declared in the library source:

  public static const version:String = '1.2.3';`,
	Args: cobra.NoArgs,
	RunE: runLibVersion,
}

var libVersionSetCmd = &cobra.Command{
	Use:   "set <version>",
	Short: "Set the library version",
	Long: `Rewrite the version declaration and, unless --skip-readme is given,
the README's download and install references.`,
	Example: `  loomtasks lib version set 1.4.0`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := version.Parse(args[0])
		if err != nil {
			return errors.NewUserError(err, "use MAJOR.MINOR.PATCH, e.g. 1.4.0")
		}
		return writeLibVersion(cmd, func(version.SemanticVersion) (version.SemanticVersion, error) {
			return v, nil
		})
	},
}

var libVersionBumpCmd = &cobra.Command{
	Use:       "bump <major|minor|patch>",
	Short:     "Increment the library version",
	Example:   `  loomtasks lib version bump patch`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(version.Major), string(version.Minor), string(version.Patch)},
	RunE: func(cmd *cobra.Command, args []string) error {
		part, err := version.ParsePart(args[0])
		if err != nil {
			return errors.NewUserError(err, "")
		}
		return writeLibVersion(cmd, func(cur version.SemanticVersion) (version.SemanticVersion, error) {
			return cur.Bump(part)
		})
	},
}

func runLibVersion(cmd *cobra.Command, _ []string) error {
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
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func writeLibVersion(cmd *cobra.Command, next func(version.SemanticVersion) (version.SemanticVersion, error)) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	file, err := p.versionFile()
	if err != nil {
		return err
	}
	site := version.Site{Path: file}

	cur, err := site.Read()
	if err != nil {
		return errors.NewUserError(err, "run: loomtasks doctor")
	}
	v, err := next(cur)
	if err != nil {
		return err
	}
	// The README's sdk is resolved first so a failure leaves the source untouched.
	var readmePath, sdk string
	if !libSkipReadme {
		readmePath = p.Settings.Readme(p.Root)
		if _, err := os.Stat(readmePath); err != nil {
			p.log.Info("no readme to update", "path", readmePath)
			readmePath = ""
		} else if sdk, _, err = p.sdkVersion(); err != nil {
			return err
		}
	}

	if _, err := site.Write(v); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s -> %s\n", file, cur, v)

	if readmePath == "" {
		return nil
	}
	changed, err := readme.SyncFile(readmePath, v, sdk)
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintf(out, "%s: updated to %s / sdk %s\n", readmePath, v, sdk)
	}
	return nil
}
