package forkexec

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Reference to src/syscall/exec_linux.go
//
//go:norace
func forkAndExecInChild(r *Runner, argv0 *byte, argv, env []*byte, redirects []redirect, p [2]int) (r1 uintptr, err1 syscall.Errno) {
	// similar to exec_linux, avoid side effect by shuffling around
	fd, nextfd := prepareFds(r.Files)
	pipe := p[1]

	// Acquire the fork lock so that no other threads
	// create new fds that are not yet close-on-exec
	// before we fork.
	syscall.ForkLock.Lock()

	// About to call fork.
	// No more allocation or calls of non-assembly functions.
	beforeFork()

	r1, _, err1 = syscall.RawSyscall6(syscall.SYS_CLONE, uintptr(syscall.SIGCHLD), 0, 0, 0, 0, 0)
	if err1 != 0 || r1 != 0 {
		// in parent process, immediate return
		return
	}

	// In child process
	afterForkInChild()
	// Notice: cannot call any GO functions beyond this point

	// Close read end of pipe
	if _, _, err1 = syscall.RawSyscall(syscall.SYS_CLOSE, uintptr(p[0]), 0, 0); err1 != 0 {
		childExitError(pipe, LocCloseRead, err1)
	}

	// Set the pgid, so that the child and its descendants can be signalled
	// as a group
	_, _, err1 = syscall.RawSyscall(syscall.SYS_SETPGID, 0, 0, 0)
	if err1 != 0 {
		childExitError(pipe, LocSetPgid, err1)
	}

	// Set limit
	for i, rlim := range r.RLimits {
		// prlimit instead of setrlimit to avoid 32-bit limitation (linux > 3.2)
		_, _, err1 = syscall.RawSyscall6(syscall.SYS_PRLIMIT64, 0, uintptr(rlim.Res), uintptr(unsafe.Pointer(&rlim.Rlim)), 0, 0, 0)
		if err1 != 0 {
			childExitErrorWithIndex(pipe, LocSetRlimit, i, err1)
		}
	}

	// Pass 1 & pass 2 assigns fds for child process
	// Pass 1: fd[i] < i => nextfd
	if pipe < nextfd {
		_, _, err1 = syscall.RawSyscall(syscall.SYS_DUP3, uintptr(pipe), uintptr(nextfd), syscall.O_CLOEXEC)
		if err1 != 0 {
			childExitError(pipe, LocDup3, err1)
		}
		pipe = nextfd
		nextfd++
	}
	for i := 0; i < len(fd); i++ {
		if fd[i] >= 0 && fd[i] < int(i) {
			// Avoid fd rewrite
			for nextfd == pipe {
				nextfd++
			}
			_, _, err1 = syscall.RawSyscall(syscall.SYS_DUP3, uintptr(fd[i]), uintptr(nextfd), syscall.O_CLOEXEC)
			if err1 != 0 {
				childExitError(pipe, LocDup3, err1)
			}
			// Set up close on exec
			fd[i] = nextfd
			nextfd++
		}
	}
	// Pass 2: fd[i] => i
	for i := 0; i < len(fd); i++ {
		if fd[i] == -1 {
			syscall.RawSyscall(syscall.SYS_CLOSE, uintptr(i), 0, 0)
			continue
		}
		if fd[i] == int(i) {
			// dup2(i, i) will not clear close on exec flag, need to reset the flag
			_, _, err1 = syscall.RawSyscall(syscall.SYS_FCNTL, uintptr(fd[i]), syscall.F_SETFD, 0)
			if err1 != 0 {
				childExitError(pipe, LocFcntl, err1)
			}
			continue
		}
		_, _, err1 = syscall.RawSyscall(syscall.SYS_DUP3, uintptr(fd[i]), uintptr(i), 0)
		if err1 != 0 {
			childExitError(pipe, LocDup3, err1)
		}
	}

	// Redirect files, opened as the current user before the credential
	// changes
	for _, rd := range redirects {
		src := uintptr(rd.from)
		if rd.path != nil {
			src, _, err1 = syscall.RawSyscall6(syscall.SYS_OPENAT, uintptr(_AT_FDCWD), uintptr(unsafe.Pointer(rd.path)),
				uintptr(rd.flag|syscall.O_CLOEXEC), redirectPerm, 0, 0)
			if err1 != 0 {
				childExitErrorWithIndex(pipe, LocOpen, rd.fd, err1)
			}
		}
		if src == uintptr(rd.fd) {
			_, _, err1 = syscall.RawSyscall(syscall.SYS_FCNTL, src, syscall.F_SETFD, 0)
			if err1 != 0 {
				childExitError(pipe, LocFcntl, err1)
			}
			continue
		}
		_, _, err1 = syscall.RawSyscall(syscall.SYS_DUP3, src, uintptr(rd.fd), 0)
		if err1 != 0 {
			childExitError(pipe, LocDup3, err1)
		}
	}

	// set the credential for the child process(exec_linux.go)
	if cred := r.Credential; cred != nil {
		ngroups := uintptr(len(cred.Groups))
		groups := uintptr(0)
		if ngroups > 0 {
			groups = uintptr(unsafe.Pointer(&cred.Groups[0]))
		}
		if !cred.NoSetGroups {
			_, _, err1 = syscall.RawSyscall(unix.SYS_SETGROUPS, ngroups, groups, 0)
			if err1 != 0 {
				childExitError(pipe, LocSetGroups, err1)
			}
		}
		_, _, err1 = syscall.RawSyscall(unix.SYS_SETGID, uintptr(cred.Gid), 0, 0)
		if err1 != 0 {
			childExitError(pipe, LocSetGid, err1)
		}
		_, _, err1 = syscall.RawSyscall(unix.SYS_SETUID, uintptr(cred.Uid), 0, 0)
		if err1 != 0 {
			childExitError(pipe, LocSetUid, err1)
		}
	}

	// Parent death signal, cleared by the credential change so set after it
	_, _, err1 = syscall.RawSyscall(syscall.SYS_PRCTL, syscall.PR_SET_PDEATHSIG, uintptr(syscall.SIGKILL), 0)
	if err1 != 0 {
		childExitError(pipe, LocSetPdeathsig, err1)
	}

	// No new privs
	if r.NoNewPrivs || r.Seccomp != nil {
		_, _, err1 = syscall.RawSyscall6(syscall.SYS_PRCTL, unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0, 0)
		if err1 != 0 {
			childExitError(pipe, LocSetNoNewPrivs, err1)
		}
	}

	// Load seccomp filter, only write, exit_group and execve follow
	if r.Seccomp != nil {
		_, _, err1 = syscall.RawSyscall(unix.SYS_SECCOMP, SECCOMP_SET_MODE_FILTER, SECCOMP_FILTER_FLAG_TSYNC, uintptr(unsafe.Pointer(r.Seccomp)))
		if err1 != 0 {
			childExitError(pipe, LocSeccomp, err1)
		}
	}

	// time to exec
	_, _, err1 = syscall.RawSyscall(unix.SYS_EXECVE, uintptr(unsafe.Pointer(argv0)),
		uintptr(unsafe.Pointer(&argv[0])), uintptr(unsafe.Pointer(&env[0])))
	childExitError(pipe, LocExecve, err1)
	return
}

//go:nosplit
func childExitError(pipe int, loc ErrorLocation, err syscall.Errno) {
	childExitErrorWithIndex(pipe, loc, 0, err)
}

//go:nosplit
func childExitErrorWithIndex(pipe int, loc ErrorLocation, idx int, err syscall.Errno) {
	childError := ChildError{
		Err:      err,
		Location: loc,
		Index:    idx,
	}

	// send error code on pipe
	syscall.RawSyscall(unix.SYS_WRITE, uintptr(pipe), uintptr(unsafe.Pointer(&childError)), unsafe.Sizeof(childError))
	for {
		syscall.RawSyscall(unix.SYS_EXIT_GROUP, childExitStatus, 0, 0)
	}
}
