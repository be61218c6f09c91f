//go:build unix

package shell

import (
	"errors"
	"os/exec"
	"syscall"
)

// killProcessGroup starts the command in its own process group and makes
// cancellation kill the whole group, so tools spawned by the shell (npm,
// node, bundlers) die with it instead of holding the output pipes open.
func killProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		err := syscall.Kill(-c.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return nil
		}
		return err
	}
}
