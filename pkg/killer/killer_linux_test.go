package killer

import (
	"errors"
	"os/exec"
	"syscall"
	"testing"

	"golang.org/x/sys/unix"
)

func startSleep(t *testing.T) *exec.Cmd {
	t.Helper()
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}
	return cmd
}

func signalOf(t *testing.T, err error) syscall.Signal {
	t.Helper()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %v", err)
	}
	ws := exitErr.Sys().(syscall.WaitStatus)
	if !ws.Signaled() {
		t.Fatalf("expected signalled, got %v", ws)
	}
	return ws.Signal()
}

func TestProcessKill(t *testing.T) {
	cmd := startSleep(t)
	p, err := Open(cmd.Process.Pid)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		t.Fatal(err)
	}
	defer p.Release()

	if err := p.Kill(); err != nil {
		t.Fatal(err)
	}
	if sig := signalOf(t, cmd.Wait()); sig != syscall.SIGKILL {
		t.Errorf("signal = %v, want SIGKILL", sig)
	}

	// reaped: the handle must not reach another process
	if err := p.Kill(); !errors.Is(err, unix.ESRCH) {
		t.Errorf("kill after reap = %v, want ESRCH", err)
	}
}

func TestProcessKillAfterRelease(t *testing.T) {
	cmd := startSleep(t)
	defer cmd.Wait()
	defer cmd.Process.Kill()

	p, err := Open(cmd.Process.Pid)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Release(); err != nil {
		t.Fatal(err)
	}
	if err := p.Release(); err != nil {
		t.Errorf("second release: %v", err)
	}
	if err := p.Kill(); !errors.Is(err, unix.EBADF) {
		t.Errorf("kill after release = %v, want EBADF", err)
	}
}

func TestKill(t *testing.T) {
	cmd := startSleep(t)
	if err := Kill(cmd.Process.Pid); err != nil {
		t.Fatal(err)
	}
	if sig := signalOf(t, cmd.Wait()); sig != syscall.SIGKILL {
		t.Errorf("signal = %v, want SIGKILL", sig)
	}
	if err := Kill(0); err == nil {
		t.Error("expected error for pid 0")
	}
	if _, err := Open(-1); err == nil {
		t.Error("expected error for pid -1")
	}
}
