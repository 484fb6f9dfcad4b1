package forkexec

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	_ "unsafe" // required for go:linkname.
)

//go:linkname beforeFork syscall.runtime_BeforeFork
func beforeFork()

//go:linkname afterFork syscall.runtime_AfterFork
func afterFork()

//go:linkname afterForkInChild syscall.runtime_AfterForkInChild
func afterForkInChild()

// Start will fork, set rlimits, redirect files, change credential, load
// seccomp and execve. It returns the pid without waiting for the child,
// a failure after the fork is reported by ChildError.
func (r *Runner) Start() (int, error) {
	if r.status != nil {
		return 0, errors.New("forkexec: runner already started")
	}
	if len(r.Args) == 0 {
		return 0, errors.New("forkexec: empty args")
	}
	argv0, argv, env, err := prepareExec(r.Args, r.Env)
	if err != nil {
		return 0, err
	}
	redirects, err := prepareRedirects(r.Redirects, len(r.Files))
	if err != nil {
		return 0, err
	}

	// p[0] is kept by parent and p[1] is used by child, the child end
	// is closed on execve
	var p [2]int
	if err := syscall.Pipe2(p[:], syscall.O_CLOEXEC); err != nil {
		return 0, fmt.Errorf("forkexec: pipe2 %w", err)
	}

	// fork in child
	pid, err1 := forkAndExecInChild(r, argv0, argv, env, redirects, p)

	// restore all signals
	afterFork()
	// closed before unlock so no other fork inherits the write end
	syscall.Close(p[1])
	syscall.ForkLock.Unlock()

	if err1 != 0 {
		syscall.Close(p[0])
		return 0, ChildError{Err: err1, Location: LocClone}
	}
	r.status = os.NewFile(uintptr(p[0]), "status")
	return int(pid), nil
}
