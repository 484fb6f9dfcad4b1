package judger

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"

	"github.com/criyle/go-judger/pkg/killer"
)

var errMonitorFired = errors.New("monitor: deadline already fired")

// monitor kills the child when the real time deadline passes. It holds a
// pidfd on the child so the signal can never reach a reused pid.
type monitor struct {
	proc *killer.Process
	stop chan struct{}
	done chan struct{}

	// written by the monitor goroutine before done is closed
	fired bool
	err   error
}

// newMonitor must be called before the child is reaped
func newMonitor(deadline time.Duration, pid int) (*monitor, error) {
	p, err := killer.Open(pid)
	if err != nil {
		return nil, err
	}
	m := &monitor{
		proc: p,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go m.run(deadline)
	return m, nil
}

func (m *monitor) run(deadline time.Duration) {
	defer close(m.done)

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case <-m.stop:
	case <-timer.C:
		m.fired = true
		m.err = m.proc.Kill()
	}
}

// Cancel stops the monitor and waits for it to finish. It reports
// whether the deadline fired before the cancel and any kill failure
// other than an already exited child.
func (m *monitor) Cancel() error {
	close(m.stop)
	<-m.done
	m.proc.Release()

	switch {
	case m.err != nil && !errors.Is(m.err, unix.ESRCH):
		return m.err
	case m.fired:
		return errMonitorFired
	}
	return nil
}
