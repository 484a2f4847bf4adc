// Package process runs external tools so that cancelling the context
// terminates the tool and every child it spawned.
package process

import (
	"context"
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks on I/O after the group was killed.
const WaitDelay = 2 * time.Second

// CommandContext is exec.CommandContext with the process placed in its own
// group and the whole group killed on cancellation.
func CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- callers pass a resolved binary
	StartInGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	cmd.WaitDelay = WaitDelay
	return cmd
}
