package rlimit

import (
	"golang.org/x/sys/unix"
)

// syscall does not define RLIMIT_NPROC
const rlimitNProc = unix.RLIMIT_NPROC
