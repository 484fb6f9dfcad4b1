package runner

// ErrorKind is the terminal status of a whole run
type ErrorKind int

// Run error kinds
const (
	Success       ErrorKind = iota // 0 run completed, result fields valid
	InvalidConfig                  // 1 limit neither unlimited nor positive
	CloneFailed                    // 2 launch region or process creation failed
	PthreadFailed                  // 3 timeout monitor failed to start
	WaitFailed                     // 4 wait4 failed
	RootRequired                   // 5 caller is not root
)

var errorKindString = []string{
	"SUCCESS",
	"INVALID_CONFIG",
	"CLONE_FAILED",
	"PTHREAD_FAILED",
	"WAIT_FAILED",
	"ROOT_REQUIRED",
}

func (e ErrorKind) String() string {
	i := int(e)
	if i >= 0 && i < len(errorKindString) {
		return errorKindString[i]
	}
	return "UNKNOWN"
}

func (e ErrorKind) Error() string {
	return e.String()
}

// Code is the numeric error code reported to callers, 0 on success and
// negative otherwise
func (e ErrorKind) Code() int {
	return -int(e)
}

// Verdict is the judgement derived from a finished run
type Verdict int

// Verdicts
const (
	Accepted Verdict = iota // 0 finished within limits
	CPUTimeLimitExceeded
	RealTimeLimitExceeded
	MemoryLimitExceeded
	RuntimeError
	SystemError
)

var verdictString = []string{
	"Accepted",
	"CPU Time Limit Exceeded",
	"Real Time Limit Exceeded",
	"Memory Limit Exceeded",
	"Runtime Error",
	"System Error",
}

func (v Verdict) String() string {
	i := int(v)
	if i >= 0 && i < len(verdictString) {
		return verdictString[i]
	}
	return "Unknown"
}
