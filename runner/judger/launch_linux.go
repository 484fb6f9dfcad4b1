package judger

import (
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/criyle/go-judger/pkg/forkexec"
	"github.com/criyle/go-judger/pkg/rlimit"
	"github.com/criyle/go-judger/pkg/seccomp"
	"github.com/criyle/go-judger/runner"
)

const outputFlag = unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC

// newLauncher prepares everything the forked child applies before execve,
// so that the child only issues raw syscalls on the prepared values
func newLauncher(c *runner.Config) (Launcher, error) {
	rl := rlimit.FromConfig(c)
	r := &forkexec.Runner{
		Args:       argv(c),
		Env:        c.Env,
		RLimits:    rl.PrepareRLimit(),
		Files:      []uintptr{0, 1, 2},
		Redirects:  redirects(c),
		Credential: credential(c),
	}
	if c.SeccompRule != "" {
		f, err := seccomp.Build(c.SeccompRule)
		if err != nil {
			return nil, err
		}
		r.Seccomp = f.SockFprog()
	}
	if r.Env == nil {
		r.Env = []string{}
	}
	return r, nil
}

// argv is the executable path followed by the configured arguments
func argv(c *runner.Config) []string {
	a := make([]string, 0, len(c.Args)+1)
	a = append(a, c.ExePath)
	return append(a, c.Args...)
}

// redirects replaces fd 0, 1, 2 with the configured files. stdout and
// stderr share one open file when the paths are equal.
func redirects(c *runner.Config) []forkexec.Redirect {
	var rd []forkexec.Redirect
	if c.InputPath != "" {
		rd = append(rd, forkexec.Redirect{Fd: 0, Path: c.InputPath, Flag: unix.O_RDONLY})
	}
	if c.OutputPath != "" {
		rd = append(rd, forkexec.Redirect{Fd: 1, Path: c.OutputPath, Flag: outputFlag})
	}
	switch {
	case c.ErrorPath == "":
	case c.ErrorPath == c.OutputPath:
		rd = append(rd, forkexec.Redirect{Fd: 2, From: 1})
	default:
		rd = append(rd, forkexec.Redirect{Fd: 2, Path: c.ErrorPath, Flag: outputFlag})
	}
	return rd
}

// credential keeps the current uid / gid for the unset one, the
// supplementary groups are reset to the gid only when it is set
func credential(c *runner.Config) *syscall.Credential {
	if c.UID == nil && c.GID == nil {
		return nil
	}
	cred := &syscall.Credential{
		Uid:         uint32(unix.Getuid()),
		Gid:         uint32(unix.Getgid()),
		NoSetGroups: true,
	}
	if c.UID != nil {
		cred.Uid = *c.UID
	}
	if c.GID != nil {
		cred.Gid = *c.GID
		cred.Groups = []uint32{*c.GID}
		cred.NoSetGroups = false
	}
	return cred
}
