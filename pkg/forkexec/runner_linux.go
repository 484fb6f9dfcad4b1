package forkexec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"unsafe"

	"github.com/criyle/go-judger/pkg/rlimit"
)

// Runner is the configuration including the exec path, argv, resource
// limits, files, credential and seccomp filter of the child. A Runner
// starts at most one child.
type Runner struct {
	// argv and env for execve syscall for the child process
	Args []string
	Env  []string

	// POSIX Resource limit set by set rlimit
	RLimits []rlimit.RLimit

	// file disriptors map for new process, from 0 to len - 1
	Files []uintptr

	// Redirects are applied after Files, in order
	Redirects []Redirect

	// credential set by setgroups, setgid and setuid
	Credential *syscall.Credential

	// seccomp syscall filter applied to child right before execve
	Seccomp *syscall.SockFprog

	// no_new_privs calls prctl(PR_SET_NO_NEW_PRIVS), always set with Seccomp
	NoNewPrivs bool

	// status pipe read end, the child writes a ChildError on failure
	status *os.File
}

// Redirect replaces the child fd Fd with the file at Path, opened by the
// child with Flag. An empty Path duplicates the child fd From instead.
// Both Fd and From must be below len(Files).
type Redirect struct {
	Fd   int
	Path string
	Flag int
	From int
}

// ChildError returns the setup failure reported by the child, or nil if
// the child reached execve. It blocks until every copy of the status pipe
// is closed, so call it after the child has been reaped.
func (r *Runner) ChildError() error {
	if r.status == nil {
		return nil
	}
	var ce ChildError
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&ce)), unsafe.Sizeof(ce))
	_, err := io.ReadFull(r.status, buf)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return fmt.Errorf("forkexec: read status %w", err)
	}
	return ce
}

// Close releases the status pipe
func (r *Runner) Close() error {
	if r.status == nil {
		return nil
	}
	err := r.status.Close()
	r.status = nil
	return err
}
