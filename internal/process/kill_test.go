package process

// Notes:
// - KillProcessGroup is only exercised with an invalid PID. PID 0 and
//   negative values would target the test's own process group.

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"
)

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
	KillProcessGroup(0)
	KillProcessGroup(-1)
}

func TestCommandContext_SetsCancel(t *testing.T) {
	t.Parallel()

	cmd := CommandContext(context.Background(), "typst", "--version")
	if cmd.Cancel == nil {
		t.Error("Cancel should be set")
	}
	if cmd.WaitDelay != WaitDelay {
		t.Errorf("WaitDelay = %v, want %v", cmd.WaitDelay, WaitDelay)
	}
	if cmd.SysProcAttr == nil {
		t.Error("SysProcAttr should be set")
	}
}

func TestCommandContext_CancelStopsProcess(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses sleep(1)")
	}
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := CommandContext(ctx, "sleep", "10").Run()
	if err == nil {
		t.Fatal("Run() should fail when the context expires")
	}
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("process ran for %v after cancellation", elapsed)
	}
}
