package judger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/criyle/go-judger/pkg/killer"
	"github.com/criyle/go-judger/pkg/logger"
	"github.com/criyle/go-judger/runner"
)

// replaced in tests
var (
	getuid       = unix.Getuid
	startMonitor = newMonitor
	reap         = reapChild
)

// Run launches the child, waits for it and returns the result. It never
// fails across its boundary, all failures are reported in Result.Error
// and leave the other result fields zero.
func (r *Runner) Run() runner.Result {
	c := &r.Config

	l := &logger.Logger{Logger: r.Logger}
	if r.Logger == nil {
		var err error
		if l, err = logger.Open(c.LogPath); err != nil {
			// the sink fails silently
			l = logger.Nop()
		}
	}
	defer l.Close()

	runID := uuid.NewString()
	log := l.With(zap.String("run_id", runID))

	result, err := r.run(log)
	if err != nil {
		log.Error("run failed", zap.Stringer("error_kind", result.Error), zap.Error(err))
		result = runner.Result{Error: result.Error}
	}
	result.Verdict = result.Judge(c)
	log.Info("run finished", zap.Stringer("result", result))

	if r.Metrics != nil {
		r.Metrics.Observe(result)
	}
	return result
}

// run returns a result carrying only the error kind together with the
// cause on fatal failures
func (r *Runner) run(log *zap.Logger) (runner.Result, error) {
	c := &r.Config
	fail := func(kind runner.ErrorKind, err error) (runner.Result, error) {
		return runner.Result{Error: kind}, err
	}

	if err := checkPrivilege(); err != nil {
		return fail(runner.RootRequired, err)
	}
	if err := c.Validate(); err != nil {
		return fail(runner.InvalidConfig, err)
	}
	log.Debug("run", zap.Stringer("config", c))

	launch := r.Launcher
	if launch == nil {
		launch = newLauncher
	}
	ch, err := launch(c)
	if err != nil {
		return fail(runner.CloneFailed, err)
	}
	defer ch.Close()

	start := time.Now()
	pid, err := ch.Start()
	if err != nil {
		return fail(runner.CloneFailed, err)
	}
	log = log.With(zap.Int("pid", pid))

	var m *monitor
	if !c.MaxRealTime.IsUnlimited() {
		if m, err = startMonitor(c.MaxRealTime.Duration(), pid); err != nil {
			killer.Kill(pid)
			reap(pid)
			return fail(runner.PthreadFailed, err)
		}
	}

	u, err := reap(pid)
	if err != nil {
		killer.Kill(pid)
		if m != nil {
			m.Cancel()
		}
		return fail(runner.WaitFailed, err)
	}
	if m != nil {
		if err := m.Cancel(); err != nil {
			log.Warn("monitor cancel", zap.Error(err))
		}
	}

	result := runner.Result{
		ExitCode: u.ExitCode,
		Signal:   u.Signal,
		CPUTime:  u.CPUTime,
		Memory:   u.Memory,
		RealTime: time.Since(start).Truncate(time.Millisecond),
	}
	if u.Signal != 0 {
		log.Debug("signalled", zap.Int("signal", u.Signal))
	}
	if err := ch.ChildError(); err != nil {
		log.Warn("child setup failed", zap.Error(err))
		result.ChildError = err.Error()
	}
	return result, nil
}

func checkPrivilege() error {
	if uid := getuid(); uid != 0 {
		return fmt.Errorf("running as uid %d", uid)
	}
	return nil
}
