//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// StartInGroup makes cmd the leader of a new process group so the whole
// tree can be signalled with KillProcessGroup.
func StartInGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; cmd.Wait reports the outcome.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
