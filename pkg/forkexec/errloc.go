package forkexec

import (
	"fmt"
	"syscall"
)

// ErrorLocation defines the location where child process failed to exec
type ErrorLocation int

// ChildError defines the specific error and location where it failed.
// Index is the rlimit index for LocSetRlimit and the target fd for LocOpen.
type ChildError struct {
	Err      syscall.Errno
	Location ErrorLocation
	Index    int
}

// Location constants
const (
	LocClone ErrorLocation = iota + 1
	LocCloseRead
	LocSetPgid
	LocSetRlimit
	LocDup3
	LocFcntl
	LocOpen
	LocSetGroups
	LocSetGid
	LocSetUid
	LocSetPdeathsig
	LocSetNoNewPrivs
	LocSeccomp
	LocExecve
)

var locToString = []string{
	"unknown",
	"clone",
	"close_read",
	"setpgid",
	"setrlimit",
	"dup3",
	"fcntl",
	"open",
	"setgroups",
	"setgid",
	"setuid",
	"set_pdeathsig",
	"set_no_new_privs",
	"seccomp",
	"execve",
}

func (e ErrorLocation) String() string {
	if e >= LocClone && e <= LocExecve {
		return locToString[e]
	}
	return "unknown"
}

func (e ChildError) Error() string {
	if e.Index > 0 || e.Location == LocOpen {
		return fmt.Sprintf("%s(%d): %s", e.Location.String(), e.Index, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Location.String(), e.Err.Error())
}
