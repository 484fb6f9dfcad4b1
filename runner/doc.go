// Package runner provides the common types for the program runner
// including Config, Limit, Size, Result, ErrorKind and Verdict.
//
// Limit
//
// Limit is either Unlimited (the zero value) or a finite value. A finite
// value that is not strictly positive makes the Config invalid.
//
// Config
//
// Config defines the limits enforced on the child together with the
// executable, arguments, environment and redirected files that are
// handed to the child setup untouched.
//
// Result
//
// Result defines the run result including the run ErrorKind, Verdict,
// CPU time, real time, peak memory, terminating signal and exit code.
//
// ErrorKind
//
//  SUCCESS
//  INVALID_CONFIG / ROOT_REQUIRED (before any process is created)
//  CLONE_FAILED / PTHREAD_FAILED / WAIT_FAILED (launch, monitor, reap)
//
// Verdict
//
//  Accepted
//  Resource Limit Exceeded (CPU Time / Real Time / Memory)
//  Runtime Error (Signaled / Nonzero Exit Status)
//  System Error
package runner
