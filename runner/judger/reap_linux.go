package judger

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"

	"github.com/criyle/go-judger/runner"
)

// usage is the exit status and resource usage of a reaped child
type usage struct {
	ExitCode int
	Signal   int
	CPUTime  time.Duration
	Memory   runner.Size
}

// reapChild blocks until pid terminates
func reapChild(pid int) (usage, error) {
	var (
		wstatus unix.WaitStatus
		rusage  unix.Rusage
	)
	for {
		_, err := unix.Wait4(pid, &wstatus, 0, &rusage)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return usage{}, err
		}
		break
	}

	u := usage{
		CPUTime: timevalMillis(rusage.Utime) + timevalMillis(rusage.Stime),
		Memory:  runner.Size(rusage.Maxrss) << 10, // KiB
	}
	switch {
	case wstatus.Exited():
		u.ExitCode = wstatus.ExitStatus()
	case wstatus.Signaled():
		u.Signal = int(wstatus.Signal())
	}
	return u, nil
}

// timevalMillis truncates to whole milliseconds
func timevalMillis(tv unix.Timeval) time.Duration {
	return time.Duration(int64(tv.Sec)*1000+int64(tv.Usec)/1000) * time.Millisecond
}
