// Package killer sends the forced termination signal to a child process.
package killer

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Kill sends SIGKILL to pid. A process that no longer exists is not an error.
func Kill(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("killer: invalid pid %d", pid)
	}
	if err := unix.Kill(pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
		return fmt.Errorf("killer: kill %d: %w", pid, err)
	}
	return nil
}

// Process is a handle on a child process that stays bound to that
// process even after its pid has been reaped and reused.
type Process struct {
	Pid      int
	pidfd    int // -1 when pidfd_open is not supported
	released bool
}

// Open creates the handle. It must be called before the process is
// reaped. Kernels without pidfd_open fall back to signalling the pid.
func Open(pid int) (*Process, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("killer: invalid pid %d", pid)
	}
	fd, err := unix.PidfdOpen(pid, 0)
	switch {
	case err == nil:
		return &Process{Pid: pid, pidfd: fd}, nil
	case errors.Is(err, unix.ENOSYS):
		return &Process{Pid: pid, pidfd: -1}, nil
	default:
		return nil, fmt.Errorf("killer: pidfd_open %d: %w", pid, err)
	}
}

// Kill sends SIGKILL to the process. It returns an error wrapping
// unix.ESRCH when the process has already exited.
func (p *Process) Kill() error {
	if p.released {
		return fmt.Errorf("killer: signal %d: %w", p.Pid, unix.EBADF)
	}
	var err error
	if p.pidfd >= 0 {
		err = unix.PidfdSendSignal(p.pidfd, unix.SIGKILL, nil, 0)
	} else {
		err = unix.Kill(p.Pid, unix.SIGKILL)
	}
	if err != nil {
		return fmt.Errorf("killer: signal %d: %w", p.Pid, err)
	}
	return nil
}

// Release closes the handle
func (p *Process) Release() error {
	if p.released {
		return nil
	}
	p.released = true
	if p.pidfd < 0 {
		return nil
	}
	return unix.Close(p.pidfd)
}
