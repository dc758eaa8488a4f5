// Package platform determines the host identity used to select an SDK's
// platform-specific subdirectories.
//
// An [Identity] is an (os, arch) pair. The OS comes from the Go runtime and
// is mapped onto the labels the Loom SDK installer uses (osx, windows,
// linux, unknown). The architecture is probed from the host: on macOS and
// Linux via `uname -m`, on Windows via the registry's
// PROCESSOR_ARCHITECTURE value. Probing never fails the caller; anything
// that goes wrong yields the x86 default.
//
//	id := platform.Detect(ctx, platform.ExecProber{})
//	fmt.Println(id.Label()) // e.g. "linux-x64"
//
// Detect should be called once per invocation and the resulting value
// passed down explicitly.
package platform
