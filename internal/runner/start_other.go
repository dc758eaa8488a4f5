//go:build !windows

package runner

import "os/exec"

// startCommand runs path directly; consoles have no titles here. The started
// process outlives the handler once released.
func startCommand(_, path string, args []string) *exec.Cmd {
	return exec.Command(path, args...)
}
