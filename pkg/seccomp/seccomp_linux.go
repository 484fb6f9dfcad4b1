package seccomp

import (
	"fmt"
	"syscall"

	"golang.org/x/net/bpf"
)

// Filter is the BPF seccomp filter value
type Filter []syscall.SockFilter

// Compile assembles the rule into raw BPF instructions
func Compile(rule string) ([]bpf.RawInstruction, error) {
	p, err := Policy(rule)
	if err != nil {
		return nil, err
	}
	insts, err := p.Assemble()
	if err != nil {
		return nil, fmt.Errorf("seccomp: assemble %s: %w", rule, err)
	}
	raw, err := bpf.Assemble(insts)
	if err != nil {
		return nil, fmt.Errorf("seccomp: bpf %s: %w", rule, err)
	}
	return raw, nil
}

// Build compiles the rule into the filter loaded by the child
func Build(rule string) (Filter, error) {
	raw, err := Compile(rule)
	if err != nil {
		return nil, err
	}
	f := make(Filter, len(raw))
	for i, ins := range raw {
		f[i] = syscall.SockFilter{Code: ins.Op, Jt: ins.Jt, Jf: ins.Jf, K: ins.K}
	}
	return f, nil
}

// SockFprog converts Filter to SockFprog for seccomp syscall
func (f Filter) SockFprog() *syscall.SockFprog {
	b := []syscall.SockFilter(f)
	return &syscall.SockFprog{
		Len:    uint16(len(b)),
		Filter: &b[0],
	}
}
