//go:build linux

// Package rlimit provides data structure for resource limits by setrlimit syscall on linux.
package rlimit

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/criyle/go-judger/runner"
)

// RLimits defines the rlimit applied by setrlimit syscall to the child
type RLimits struct {
	CPU          uint64 // in s
	FileSize     uint64 // in bytes
	Stack        uint64 // in bytes
	AddressSpace uint64 // in bytes
	NumProc      uint64 // number of processes of the real user
	DisableCore  bool   // set core to 0
}

// RLimit is the resource limits defined by Linux setrlimit
type RLimit struct {
	// Res is the resource type (e.g. syscall.RLIMIT_CPU)
	Res int
	// Rlim is the limit applied to that resource
	Rlim syscall.Rlimit
}

// FromConfig converts the run limits to rlimits. CPU time is rounded up
// to the next whole second plus one, the address space is twice the
// memory limit so that the peak memory can be compared after the run.
func FromConfig(c *runner.Config) RLimits {
	var r RLimits
	if v, ok := c.MaxCPUTime.Value(); ok {
		r.CPU = uint64((v + 1000) / 1000)
	}
	if v, ok := c.MaxMemory.Value(); ok && !c.MemoryLimitCheckOnly {
		r.AddressSpace = uint64(v) * 2
	}
	if v, ok := c.MaxStack.Value(); ok {
		r.Stack = uint64(v)
	}
	if v, ok := c.MaxProcessNumber.Value(); ok {
		r.NumProc = uint64(v)
	}
	if v, ok := c.MaxOutputSize.Value(); ok {
		r.FileSize = uint64(v)
	}
	return r
}

func getRlimit(cur, max uint64) syscall.Rlimit {
	return syscall.Rlimit{Cur: cur, Max: max}
}

// PrepareRLimit creates rlimit structures for the child
// TimeLimit in s, SizeLimit in byte
func (r *RLimits) PrepareRLimit() []RLimit {
	var ret []RLimit
	if r.Stack > 0 {
		ret = append(ret, RLimit{
			Res:  syscall.RLIMIT_STACK,
			Rlim: getRlimit(r.Stack, r.Stack),
		})
	}
	if r.AddressSpace > 0 {
		ret = append(ret, RLimit{
			Res:  syscall.RLIMIT_AS,
			Rlim: getRlimit(r.AddressSpace, r.AddressSpace),
		})
	}
	if r.CPU > 0 {
		ret = append(ret, RLimit{
			Res:  syscall.RLIMIT_CPU,
			Rlim: getRlimit(r.CPU, r.CPU),
		})
	}
	if r.NumProc > 0 {
		ret = append(ret, RLimit{
			Res:  rlimitNProc,
			Rlim: getRlimit(r.NumProc, r.NumProc),
		})
	}
	if r.FileSize > 0 {
		ret = append(ret, RLimit{
			Res:  syscall.RLIMIT_FSIZE,
			Rlim: getRlimit(r.FileSize, r.FileSize),
		})
	}
	if r.DisableCore {
		ret = append(ret, RLimit{
			Res:  syscall.RLIMIT_CORE,
			Rlim: getRlimit(0, 0),
		})
	}
	return ret
}

func (r RLimit) String() string {
	switch r.Res {
	case syscall.RLIMIT_CPU:
		return fmt.Sprintf("CPU[%d s:%d s]", r.Rlim.Cur, r.Rlim.Max)
	case rlimitNProc:
		return fmt.Sprintf("NumProc[%d:%d]", r.Rlim.Cur, r.Rlim.Max)
	}
	t := ""
	switch r.Res {
	case syscall.RLIMIT_FSIZE:
		t = "File"
	case syscall.RLIMIT_STACK:
		t = "Stack"
	case syscall.RLIMIT_AS:
		t = "AddressSpace"
	case syscall.RLIMIT_CORE:
		t = "Core"
	}
	return fmt.Sprintf("%s[%v:%v]", t, runner.Size(r.Rlim.Cur), runner.Size(r.Rlim.Max))
}

func (r RLimits) String() string {
	var sb strings.Builder
	sb.WriteString("RLimits[")
	for i, rl := range r.PrepareRLimit() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(rl.String())
	}
	sb.WriteString("]")
	return sb.String()
}
