package forkexec

import (
	"fmt"
	"syscall"
)

// redirect is the Redirect prepared for the child
type redirect struct {
	path *byte
	flag int
	fd   int
	from int
}

// prepareExec prepares execve parameters
func prepareExec(Args, Env []string) (*byte, []*byte, []*byte, error) {
	// make exec args0
	argv0, err := syscall.BytePtrFromString(Args[0])
	if err != nil {
		return nil, nil, nil, err
	}
	// make exec args
	argv, err := syscall.SlicePtrFromStrings(Args)
	if err != nil {
		return nil, nil, nil, err
	}
	// make env
	env, err := syscall.SlicePtrFromStrings(Env)
	if err != nil {
		return nil, nil, nil, err
	}
	return argv0, argv, env, nil
}

// prepareFds prepares fd array
func prepareFds(files []uintptr) ([]int, int) {
	fd := make([]int, len(files))
	nextfd := len(files)
	for i, ufd := range files {
		if nextfd < int(ufd) {
			nextfd = int(ufd)
		}
		fd[i] = int(ufd)
	}
	nextfd++
	return fd, nextfd
}

// prepareRedirects checks every redirect targets one of the n files
func prepareRedirects(rds []Redirect, n int) ([]redirect, error) {
	ret := make([]redirect, 0, len(rds))
	for _, rd := range rds {
		if rd.Fd < 0 || rd.Fd >= n {
			return nil, fmt.Errorf("forkexec: redirect to fd %d out of %d files", rd.Fd, n)
		}
		path, err := syscallStringFromString(rd.Path)
		if err != nil {
			return nil, err
		}
		if path == nil && (rd.From < 0 || rd.From >= n) {
			return nil, fmt.Errorf("forkexec: redirect from fd %d out of %d files", rd.From, n)
		}
		ret = append(ret, redirect{path: path, flag: rd.Flag, fd: rd.Fd, from: rd.From})
	}
	return ret, nil
}

// syscallStringFromString prepares *byte if string is not empty, other wise nil
func syscallStringFromString(str string) (*byte, error) {
	if str != "" {
		return syscall.BytePtrFromString(str)
	}
	return nil, nil
}
