// Package forkexec provides interface to run a subprocess with seccomp filter,
// rlimit, redirected files and credential.
//
// The child is created by a raw clone of the calling thread and issues only
// raw syscalls until execve, so nothing of the Go runtime runs inside the
// rlimits or the seccomp filter.
//
// seccomp requires kernel >= 3.5
// pipe2, dup3 requires kernel >= 2.6.27
// prlimit64 requires kernel >= 2.6.36
package forkexec
