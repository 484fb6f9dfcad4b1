// Package judger supervises a single run: it launches the child, races
// the real time deadline against the child's termination, reaps it and
// fills the result.
package judger

import (
	"go.uber.org/zap"

	"github.com/criyle/go-judger/pkg/metrics"
	"github.com/criyle/go-judger/runner"
)

// Runner runs one program under the limits of Config
type Runner struct {
	Config runner.Config

	// Metrics records the result if not nil
	Metrics *metrics.Collector

	// Logger overrides the log sink opened from Config.LogPath
	Logger *zap.Logger

	// Launcher creates the process launcher for the config, default to
	// forking through forkexec
	Launcher func(c *runner.Config) (Launcher, error)
}

// Launcher starts the child process and collects its setup failure
// after it is reaped
type Launcher interface {
	Start() (int, error)
	ChildError() error
	Close() error
}
