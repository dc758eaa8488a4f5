package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ellemenno/loomtasks/internal/doctor"
	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/logging"
	"github.com/ellemenno/loomtasks/internal/paths"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVarP(&doctorAll, "all", "a", false,
		"show passed and informational checks too")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable issues (stale README references)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the project and SDK setup",
	Long: `Run diagnostic checks on the host, the selected SDK, loom.config files,
the library version declaration and the README.

Output modes:
  (default)   Show errors and warnings
  --all       Show all checks including passed ones
  --json      Machine-readable JSON output
  -q          No output, exit code only

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if doctorJSON && doctorAll {
		return errors.NewUserError(errors.New("flags --json and --all are mutually exclusive"), "")
	}

	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	sdkVersion, _, _ := p.sdkVersion()
	versionFile := p.Settings.VersionFile(p.Root)
	home := p.Locator.Home

	runner := doctor.NewRunner(
		doctor.NewPlatformCheck(p.Platform),
		doctor.NewSettingsCheck(p.Settings),
		doctor.NewConfigCheck("project-config", p.configFile(), true),
		doctor.NewConfigCheck("global-config", paths.GlobalConfigFile(home), false),
		doctor.NewSDKCheck(p.Locator, sdkVersion),
		doctor.NewToolsCheck(p.Locator.Layout(sdkVersion, p.Platform)),
		doctor.NewVersionCheck(versionFile),
		doctor.NewReadmeCheck(p.Settings.Readme(p.Root), versionFile, sdkVersion),
		doctor.NewMainBinaryCheck(paths.MainBinary(p.Root)),
	)

	report := runner.Run(ctx)
	out := cmd.OutOrStdout()

	if doctorFix {
		for _, fix := range runner.Fix(ctx) {
			if fix.Error != nil {
				fmt.Fprintf(out, "fix failed: %s: %v\n", fix.Path, fix.Error)
				continue
			}
			fmt.Fprintf(out, "fixed %s: %s\n", fix.Path, fix.Description)
		}
		report = runner.Run(ctx)
	}

	switch {
	case quiet:
	case doctorJSON:
		if err := writeDoctorJSON(out, report); err != nil {
			return err
		}
	default:
		writeDoctorText(out, report)
	}

	if report.HasErrors() {
		return errors.NewSystemError(errors.Newf("%d check(s) failed", report.Summary.Errors), "")
	}
	if report.HasWarnings() {
		return errors.NewUserError(errors.Newf("%d warning(s)", report.Summary.Warnings), "run: loomtasks doctor --fix")
	}
	return nil
}

func writeDoctorJSON(w io.Writer, report *doctor.DoctorReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func writeDoctorText(w io.Writer, report *doctor.DoctorReport) {
	useColor := logging.SupportsColor(w)
	paint := map[doctor.Severity]*color.Color{
		doctor.SeverityPass:    color.New(color.FgGreen),
		doctor.SeverityInfo:    color.New(color.FgCyan),
		doctor.SeverityWarning: color.New(color.FgYellow),
		doctor.SeverityError:   color.New(color.FgRed),
	}

	shown := 0
	for _, r := range report.Results {
		problem := r.Status == doctor.SeverityError || r.Status == doctor.SeverityWarning
		if !doctorAll && !problem {
			continue
		}
		shown++

		icon := r.Status.Icon()
		if c, ok := paint[r.Status]; ok && useColor {
			icon = c.Sprint(icon)
		}
		fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, r.Category, r.Name, r.Message)
		if r.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", r.FixHint)
		}
	}

	if shown > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}
