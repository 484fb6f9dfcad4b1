package runner

import (
	"fmt"
)

// Config is the run configuration. Limits are consumed by the run
// supervisor, everything else is passed to the child untouched.
type Config struct {
	MaxCPUTime       Limit     `json:"max_cpu_time" yaml:"max_cpu_time"`             // ms
	MaxRealTime      Limit     `json:"max_real_time" yaml:"max_real_time"`           // ms
	MaxMemory        SizeLimit `json:"max_memory" yaml:"max_memory"`                 // bytes
	MaxStack         SizeLimit `json:"max_stack" yaml:"max_stack"`                   // bytes
	MaxProcessNumber Limit     `json:"max_process_number" yaml:"max_process_number"` // count
	MaxOutputSize    SizeLimit `json:"max_output_size" yaml:"max_output_size"`       // bytes

	// MemoryLimitCheckOnly skips RLIMIT_AS and only compares the peak
	// memory against MaxMemory after the run
	MemoryLimitCheckOnly bool `json:"memory_limit_check_only" yaml:"memory_limit_check_only"`

	ExePath string   `json:"exe_path" yaml:"exe_path"`
	Args    []string `json:"args" yaml:"args"`
	Env     []string `json:"env" yaml:"env"`

	// stdin, stdout, stderr file name. empty for inherit
	InputPath  string `json:"input_path" yaml:"input_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`
	ErrorPath  string `json:"error_path" yaml:"error_path"`

	LogPath     string `json:"log_path" yaml:"log_path"`
	SeccompRule string `json:"seccomp_rule" yaml:"seccomp_rule"`

	// credential for the child, nil to keep the current one
	UID *uint32 `json:"uid,omitempty" yaml:"uid,omitempty"`
	GID *uint32 `json:"gid,omitempty" yaml:"gid,omitempty"`
}

// LimitError reports the first limit field which is neither unlimited
// nor strictly positive
type LimitError struct {
	Field string
	Limit Limit
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Limit)
}

// Validate checks every limit field
func (c *Config) Validate() error {
	for _, f := range []struct {
		name string
		l    Limit
	}{
		{"max_cpu_time", c.MaxCPUTime},
		{"max_real_time", c.MaxRealTime},
		{"max_memory", c.MaxMemory.Limit},
		{"max_stack", c.MaxStack.Limit},
		{"max_process_number", c.MaxProcessNumber},
		{"max_output_size", c.MaxOutputSize.Limit},
	} {
		if !f.l.Valid() {
			return &LimitError{Field: f.name, Limit: f.l}
		}
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Config[%s %v][CPU=%v Real=%v Memory=%v Stack=%v Proc=%v Output=%v]",
		c.ExePath, c.Args, c.MaxCPUTime, c.MaxRealTime, c.MaxMemory, c.MaxStack,
		c.MaxProcessNumber, c.MaxOutputSize)
}
