package forkexec

import (
	"golang.org/x/sys/unix"
)

// defines missing consts from syscall package
const (
	SECCOMP_SET_MODE_STRICT   = 0
	SECCOMP_SET_MODE_FILTER   = 1
	SECCOMP_FILTER_FLAG_TSYNC = 1

	// exit status of the child when the setup failed
	childExitStatus = 1

	// permission of the files created by redirects
	redirectPerm = 0644
)

// go does not allow constant uintptr to be negative...
var _AT_FDCWD = unix.AT_FDCWD
