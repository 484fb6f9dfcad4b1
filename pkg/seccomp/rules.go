//go:build linux

// Package seccomp provides the named seccomp rules loaded by the child
// right before execve, built on go-seccomp-bpf.
//
// The child issues raw syscalls only, so a rule lists what the target
// program needs from its first instruction after execve.
package seccomp

import (
	"fmt"
	"sort"

	libseccomp "github.com/elastic/go-seccomp-bpf"
	"github.com/elastic/go-seccomp-bpf/arch"
)

// Rule names
const (
	RuleCCpp    = "c_cpp"
	RuleGeneral = "general"
	RuleGolang  = "golang"
)

var (
	cCppAllows = []string{
		"read", "write", "readv", "writev", "pread64", "close", "lseek",
		"open", "openat", "access", "faccessat", "readlink", "readlinkat",
		"fstat", "newfstatat", "stat", "lstat", "statx", "fcntl", "ioctl",
		"brk", "mmap", "munmap", "mprotect", "mremap", "arch_prctl", "uname", "sysinfo",
		"set_tid_address", "set_robust_list", "rseq", "prlimit64", "getrandom",
		"clock_gettime", "gettimeofday", "getrusage", "times", "time",
		"exit_group", "execve",
	}

	// the go runtime threads, signals and netpoller
	golangAllows = []string{
		"futex", "nanosleep", "clock_nanosleep", "sched_yield", "getpid", "gettid", "tgkill",
		"rt_sigaction", "rt_sigprocmask", "rt_sigreturn", "sigaltstack", "madvise",
		"epoll_pwait", "epoll_wait", "exit",
		"clone", "clone3", "sched_getaffinity", "epoll_create1", "epoll_ctl", "pipe2",
		"getuid", "geteuid", "getgid", "getegid", "getppid", "getcwd", "fstatfs",
	}

	generalDenies = []string{
		"fork", "vfork", "kill", "execveat",
		"socket", "socketpair", "connect", "bind", "listen", "accept", "accept4",
		"ptrace", "mount", "umount2", "pivot_root", "chroot", "setns", "unshare",
	}
)

// Names returns the known rule names in order
func Names() []string {
	return []string{RuleCCpp, RuleGeneral, RuleGolang}
}

// Policy creates the policy for the rule name
func Policy(rule string) (*libseccomp.Policy, error) {
	known, err := nativeSyscalls()
	if err != nil {
		return nil, err
	}
	switch rule {
	case RuleCCpp:
		return allowOnly(known, cCppAllows), nil

	case RuleGolang:
		return allowOnly(known, cCppAllows, golangAllows), nil

	case RuleGeneral:
		return &libseccomp.Policy{
			DefaultAction: libseccomp.ActionAllow,
			Syscalls: []libseccomp.SyscallGroup{{
				Action: libseccomp.ActionKillProcess,
				Names:  filterKnown(known, generalDenies),
			}},
		}, nil

	default:
		return nil, fmt.Errorf("seccomp: unknown rule %q", rule)
	}
}

func allowOnly(known map[string]bool, lists ...[]string) *libseccomp.Policy {
	var names []string
	for _, l := range lists {
		names = append(names, l...)
	}
	return &libseccomp.Policy{
		DefaultAction: libseccomp.ActionKillProcess,
		Syscalls: []libseccomp.SyscallGroup{{
			Action: libseccomp.ActionAllow,
			Names:  filterKnown(known, names),
		}},
	}
}

// filterKnown drops names missing on the native arch (e.g. open on arm64)
// and duplicates
func filterKnown(known map[string]bool, names []string) []string {
	seen := make(map[string]bool, len(names))
	ret := make([]string, 0, len(names))
	for _, n := range names {
		if known[n] && !seen[n] {
			seen[n] = true
			ret = append(ret, n)
		}
	}
	sort.Strings(ret)
	return ret
}

func nativeSyscalls() (map[string]bool, error) {
	info, err := arch.GetInfo("")
	if err != nil {
		return nil, fmt.Errorf("seccomp: arch info %w", err)
	}
	known := make(map[string]bool, len(info.SyscallNumbers))
	for _, name := range info.SyscallNumbers {
		known[name] = true
	}
	return known, nil
}
