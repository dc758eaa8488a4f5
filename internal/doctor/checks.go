package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ellemenno/loomtasks/internal/config"
	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/platform"
	"github.com/ellemenno/loomtasks/internal/readme"
	"github.com/ellemenno/loomtasks/internal/sdk"
	"github.com/ellemenno/loomtasks/internal/version"
)

// Check categories.
const (
	CategoryHost    = "host"
	CategorySDK     = "sdk"
	CategoryConfig  = "config"
	CategoryLibrary = "library"
)

// base supplies Name and Category for the concrete checks.
type base struct {
	name     string
	category string
}

func (b base) Name() string     { return b.name }
func (b base) Category() string { return b.category }

func (b base) result(status Severity, msg string) *CheckResult {
	return &CheckResult{Name: b.name, Category: b.category, Status: status, Message: msg}
}

// PlatformCheck reports the detected host identity.
type PlatformCheck struct {
	base
	Identity platform.Identity
}

// NewPlatformCheck creates a check reporting id.
func NewPlatformCheck(id platform.Identity) *PlatformCheck {
	return &PlatformCheck{base: base{"host-platform", CategoryHost}, Identity: id}
}

// Run reports the host; an unrecognized OS is a warning.
func (c *PlatformCheck) Run(context.Context) *CheckResult {
	r := c.result(SeverityInfo, "host is "+c.Identity.Label())
	r.Details = map[string]any{"os": c.Identity.OS, "arch": c.Identity.Arch}
	if c.Identity.OS == platform.Unknown {
		r.Status = SeverityWarning
		r.Message = "unrecognized host operating system"
	}
	return r
}

// SDKCheck verifies that the selected SDK version is installed.
type SDKCheck struct {
	base
	Locator *sdk.Locator
	Version string
}

// NewSDKCheck creates a check for version under l.
func NewSDKCheck(l *sdk.Locator, version string) *SDKCheck {
	return &SDKCheck{base: base{"sdk-installed", CategorySDK}, Locator: l, Version: version}
}

func (c *SDKCheck) Run(context.Context) *CheckResult {
	installed, err := c.Locator.Installed()
	if err != nil {
		return c.result(SeverityError, err.Error())
	}

	var r *CheckResult
	switch {
	case c.Version == "":
		r = c.result(SeverityError, "no sdk version selected")
		r.FixHint = "set sdk_version in loom.config, or run: loomtasks sdk use"
	case !c.Locator.Exists(c.Version):
		r = c.result(SeverityError, fmt.Sprintf("sdk %s is not installed", c.Version))
		r.FixHint = "install it under " + c.Locator.Root("")
	default:
		r = c.result(SeverityPass, fmt.Sprintf("sdk %s found at %s", c.Version, c.Locator.Root(c.Version)))
	}
	r.Details = map[string]any{"installed": installed}
	return r
}

// ToolsCheck verifies the executables of an SDK layout.
type ToolsCheck struct {
	base
	Layout sdk.Layout
}

// NewToolsCheck creates a check over lay.
func NewToolsCheck(lay sdk.Layout) *ToolsCheck {
	return &ToolsCheck{base: base{"sdk-tools", CategorySDK}, Layout: lay}
}

func (c *ToolsCheck) Run(context.Context) *CheckResult {
	if c.Layout.Version == "" || !isDir(c.Layout.Root) {
		return c.result(SeverityInfo, "skipped: sdk not installed")
	}

	var missing []string
	for _, p := range []string{c.Layout.Runner, c.Layout.Compiler} {
		if !exists(p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		r := c.result(SeverityError, "missing sdk tools: "+strings.Join(missing, ", "))
		r.Details = map[string]any{"missing": missing}
		return r
	}

	if c.Layout.Player == "" {
		return c.result(SeverityInfo, "tools present; no player for "+c.Layout.Platform.Label())
	}
	if !exists(c.Layout.Player) {
		r := c.result(SeverityWarning, "player not found: "+c.Layout.Player)
		r.FixHint = "reinstall the sdk for " + c.Layout.Platform.Label()
		return r
	}
	return c.result(SeverityPass, "tools and player present")
}

// ConfigCheck verifies that a loom.config file parses.
type ConfigCheck struct {
	base
	Path     string
	Required bool
}

// NewConfigCheck creates a check for the loom.config at path. A missing
// required file is a warning; a missing optional one is informational.
func NewConfigCheck(name, path string, required bool) *ConfigCheck {
	return &ConfigCheck{base: base{name, CategoryConfig}, Path: path, Required: required}
}

func (c *ConfigCheck) Run(context.Context) *CheckResult {
	doc, err := config.ReadJSON(c.Path)
	switch {
	case errors.Is(err, errors.ErrConfigMissing):
		if c.Required {
			r := c.result(SeverityWarning, "not found: "+c.Path)
			r.FixHint = "run: loomtasks init"
			return r
		}
		return c.result(SeverityInfo, "not present: "+c.Path)
	case err != nil:
		r := c.result(SeverityError, err.Error())
		r.FixHint = "fix the JSON syntax in " + c.Path
		return r
	}

	r := c.result(SeverityPass, "parsed "+c.Path)
	if v, ok := doc.GetString(config.KeySDKVersion); ok {
		r.Details = map[string]any{"sdk_version": v}
	}
	return r
}

// SettingsCheck validates the resolved tool settings.
type SettingsCheck struct {
	base
	Settings *config.Settings
}

// NewSettingsCheck creates a check over s.
func NewSettingsCheck(s *config.Settings) *SettingsCheck {
	return &SettingsCheck{base: base{"settings", CategoryConfig}, Settings: s}
}

func (c *SettingsCheck) Run(context.Context) *CheckResult {
	errs := config.Validate(c.Settings)
	if len(errs) == 0 {
		r := c.result(SeverityPass, "settings valid")
		if used := config.ConfigFileUsed(); used != "" {
			r.Details = map[string]any{"file": used}
		}
		return r
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	r := c.result(SeverityError, strings.Join(msgs, "; "))
	r.Details = map[string]any{"errors": msgs}
	return r
}

// VersionCheck verifies the library version declaration.
type VersionCheck struct {
	base
	Path string
}

// NewVersionCheck creates a check for the version file at path.
func NewVersionCheck(path string) *VersionCheck {
	return &VersionCheck{base: base{"lib-version", CategoryLibrary}, Path: path}
}

func (c *VersionCheck) Run(context.Context) *CheckResult {
	if c.Path == "" {
		r := c.result(SeverityWarning, "no version file configured")
		r.FixHint = "set lib_name or lib_version_file in .loomtasks.yml"
		return r
	}
	v, err := version.Site{Path: c.Path}.Read()
	if err != nil {
		r := c.result(SeverityError, err.Error())
		if errors.Is(err, errors.ErrVersionNotFound) {
			r.FixHint = "declare: public static const version:String = '0.0.1';"
		}
		return r
	}
	r := c.result(SeverityPass, "version "+v.String())
	r.Details = map[string]any{"version": v.String(), "file": c.Path}
	return r
}

// ReadmeCheck reports README references that disagree with the library
// version or the SDK. It can fix them.
type ReadmeCheck struct {
	base
	Path        string
	VersionFile string
	SDK         string

	version version.SemanticVersion
	drift   []readme.Drift
}

var _ Fixer = (*ReadmeCheck)(nil)

// NewReadmeCheck creates a check of the README at path.
func NewReadmeCheck(path, versionFile, sdkVersion string) *ReadmeCheck {
	return &ReadmeCheck{
		base:        base{"readme-sync", CategoryLibrary},
		Path:        path,
		VersionFile: versionFile,
		SDK:         sdkVersion,
	}
}

func (c *ReadmeCheck) Run(context.Context) *CheckResult {
	c.drift = nil
	if !exists(c.Path) {
		return c.result(SeverityInfo, "no readme at "+c.Path)
	}
	if c.VersionFile == "" || c.SDK == "" {
		return c.result(SeverityInfo, "skipped: version file or sdk unknown")
	}
	v, err := version.Site{Path: c.VersionFile}.Read()
	if err != nil {
		return c.result(SeverityInfo, "skipped: library version unreadable")
	}
	drift, err := readme.CheckFile(c.Path, v, c.SDK)
	if err != nil {
		return c.result(SeverityError, err.Error())
	}
	if len(drift) == 0 {
		return c.result(SeverityPass, "readme matches version "+v.String()+" and sdk "+c.SDK)
	}

	c.version, c.drift = v, drift
	lines := make([]string, len(drift))
	for i, d := range drift {
		lines[i] = fmt.Sprintf("line %d: %s (want %s)", d.Line, d.Found, d.Want)
	}
	r := c.result(SeverityWarning, fmt.Sprintf("%d stale reference(s) in %s", len(drift), c.Path))
	r.Details = map[string]any{"drift": lines}
	r.Fixable = true
	r.FixHint = "run: loomtasks readme sync"
	return r
}

// CanFix reports whether the last Run found drift.
func (c *ReadmeCheck) CanFix() bool {
	return len(c.drift) > 0
}

// Fix rewrites the README in place.
func (c *ReadmeCheck) Fix(context.Context) []FixResult {
	res := FixResult{Path: c.Path}
	changed, err := readme.SyncFile(c.Path, c.version, c.SDK)
	switch {
	case err != nil:
		res.Description = "sync failed"
		res.Error = err
	case changed:
		res.Fixed = true
		res.Description = fmt.Sprintf("synced %d reference(s) to %s / %s", len(c.drift), c.version, c.SDK)
		c.drift = nil
	default:
		res.Description = "already in sync"
	}
	return []FixResult{res}
}

// MainBinaryCheck verifies that the compiled program exists.
type MainBinaryCheck struct {
	base
	Path string
}

// NewMainBinaryCheck creates a check for bin/Main.loom at path.
func NewMainBinaryCheck(path string) *MainBinaryCheck {
	return &MainBinaryCheck{base: base{"main-binary", CategoryLibrary}, Path: path}
}

func (c *MainBinaryCheck) Run(context.Context) *CheckResult {
	if !exists(c.Path) {
		r := c.result(SeverityWarning, "not built: "+c.Path)
		r.FixHint = "run: loomtasks compile"
		return r
	}
	return c.result(SeverityPass, "found "+c.Path)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
