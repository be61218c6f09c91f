//go:build !unix

package shell

import "os/exec"

// killProcessGroup keeps the default behavior of killing only the direct
// child; WaitDelay still releases the output pipes.
func killProcessGroup(_ *exec.Cmd) {}
