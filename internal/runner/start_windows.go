//go:build windows

package runner

import (
	"os/exec"
	"syscall"
)

// createNoWindow is CREATE_NO_WINDOW; the console comes from start itself.
const createNoWindow = 0x08000000

func startCommand(title, path string, args []string) *exec.Cmd {
	cmd := exec.Command("cmd.exe")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       startLine(title, path, args),
		CreationFlags: createNoWindow,
	}
	return cmd
}
