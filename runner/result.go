package runner

import (
	"fmt"
	"time"
)

// Result is the run result, written only by the run supervisor
type Result struct {
	Error   ErrorKind // terminal status of the run
	Verdict Verdict   // judgement derived from the metrics below

	CPUTime  time.Duration // user + system CPU time, in whole ms
	RealTime time.Duration // launch to reap, in whole ms
	Memory   Size          // peak resident memory (bytes)

	Signal   int // terminating signal, 0 if exited normally
	ExitCode int // exit status, meaningful when Signal == 0

	// ChildError is the setup failure reported by the child before execve
	ChildError string
}

func (r Result) String() string {
	switch {
	case r.Error != Success:
		return fmt.Sprintf("Result[%v]", r.Error)

	case r.ChildError != "":
		return fmt.Sprintf("Result[%v(%s)][%v %v %v]", r.Verdict, r.ChildError, r.CPUTime, r.RealTime, r.Memory)

	case r.Signal != 0:
		return fmt.Sprintf("Result[%v Signalled(%d)][%v %v %v]", r.Verdict, r.Signal, r.CPUTime, r.RealTime, r.Memory)

	default:
		return fmt.Sprintf("Result[%v(%d)][%v %v %v]", r.Verdict, r.ExitCode, r.CPUTime, r.RealTime, r.Memory)
	}
}

// Report is the wire form of Result with integer milliseconds and bytes
type Report struct {
	Error      int    `json:"error"`
	ErrorName  string `json:"error_name"`
	Result     int    `json:"result"`
	CPUTime    int64  `json:"cpu_time"`
	RealTime   int64  `json:"real_time"`
	Memory     uint64 `json:"memory"`
	Signal     int    `json:"signal"`
	ExitCode   int    `json:"exit_code"`
	ChildError string `json:"child_error,omitempty"`
}

// Report converts the result to its wire form
func (r Result) Report() Report {
	return Report{
		Error:      r.Error.Code(),
		ErrorName:  r.Error.String(),
		Result:     int(r.Verdict),
		CPUTime:    r.CPUTime.Milliseconds(),
		RealTime:   r.RealTime.Milliseconds(),
		Memory:     r.Memory.Byte(),
		Signal:     r.Signal,
		ExitCode:   r.ExitCode,
		ChildError: r.ChildError,
	}
}

// Judge derives the verdict of a finished run from its metrics. The
// rules are applied in order and later ones override earlier ones.
func (r Result) Judge(c *Config) Verdict {
	if r.Error != Success {
		return SystemError
	}
	v := Accepted
	if r.ExitCode != 0 {
		v = RuntimeError
	}
	if r.ChildError != "" {
		v = SystemError
	} else if r.Signal != 0 {
		v = RuntimeError
	}
	if c.MaxMemory.Exceeded(int64(r.Memory)) {
		v = MemoryLimitExceeded
	}
	if c.MaxRealTime.Exceeded(r.RealTime.Milliseconds()) {
		v = RealTimeLimitExceeded
	}
	if c.MaxCPUTime.Exceeded(r.CPUTime.Milliseconds()) {
		v = CPUTimeLimitExceeded
	}
	return v
}
