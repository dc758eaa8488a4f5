package platform

import (
	"context"
	"log/slog"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

// OS labels as used in SDK directory names.
const (
	OSX     = "osx"
	Windows = "windows"
	Linux   = "linux"
	Unknown = "unknown"
)

// Architecture labels as used in SDK directory names.
const (
	X86 = "x86"
	X64 = "x64"
)

// registryKey holds the system-wide PROCESSOR_ARCHITECTURE value on Windows.
const registryKey = `HKLM\System\CurrentControlSet\Control\Session Manager\Environment`

var win64Marker = regexp.MustCompile(`64`)

// Identity is the (os, arch) pair that selects an SDK's platform subdirectory.
type Identity struct {
	OS   string
	Arch string
}

// Label returns the "<os>-<arch>" directory label.
func (id Identity) Label() string {
	return id.OS + "-" + id.Arch
}

// String implements fmt.Stringer.
func (id Identity) String() string {
	return id.Label()
}

// Prober queries the host for architecture hints.
type Prober interface {
	// Uname returns the output of `uname -m`.
	Uname(ctx context.Context) (string, error)

	// ProcessorArchitecture returns the raw output of the Windows registry
	// query for PROCESSOR_ARCHITECTURE.
	ProcessorArchitecture(ctx context.Context) (string, error)
}

// ExecProber implements Prober by spawning the host's query commands.
type ExecProber struct{}

var _ Prober = ExecProber{}

// Uname runs `uname -m`.
func (ExecProber) Uname(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "uname", "-m").Output()
	return string(out), err
}

// ProcessorArchitecture runs `reg query ... /v PROCESSOR_ARCHITECTURE`.
func (ExecProber) ProcessorArchitecture(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "reg", "query", registryKey, "/v", "PROCESSOR_ARCHITECTURE").Output()
	return string(out), err
}

// OSFromGOOS maps a Go GOOS value onto an SDK OS label.
func OSFromGOOS(goos string) string {
	switch goos {
	case "darwin":
		return OSX
	case "windows":
		return Windows
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// Detect returns the identity of the running host.
func Detect(ctx context.Context, p Prober) Identity {
	return DetectFor(ctx, runtime.GOOS, p)
}

// DetectFor returns the identity for the given GOOS, probing the
// architecture with p. Probe failures fall back to X86 and are only logged.
func DetectFor(ctx context.Context, goos string, p Prober) Identity {
	id := Identity{OS: OSFromGOOS(goos), Arch: X86}
	if p == nil {
		return id
	}

	switch id.OS {
	case OSX, Linux:
		out, err := p.Uname(ctx)
		if err != nil {
			slog.Debug("architecture probe failed, assuming x86", "probe", "uname", "error", err)
			return id
		}
		if strings.TrimSpace(out) == "x86_64" {
			id.Arch = X64
		}
	case Windows:
		out, err := p.ProcessorArchitecture(ctx)
		if err != nil {
			slog.Debug("architecture probe failed, assuming x86", "probe", "reg", "error", err)
			return id
		}
		if win64Marker.MatchString(out) {
			id.Arch = X64
		}
	}

	return id
}

// Parse converts a "<os>-<arch>" label back into an Identity.
// It reports false when the label is not of that shape or names an
// unknown os or arch.
func Parse(label string) (Identity, bool) {
	osLabel, arch, ok := strings.Cut(label, "-")
	if !ok {
		return Identity{}, false
	}
	switch osLabel {
	case OSX, Windows, Linux, Unknown:
	default:
		return Identity{}, false
	}
	if arch != X86 && arch != X64 {
		return Identity{}, false
	}
	return Identity{OS: osLabel, Arch: arch}, true
}
