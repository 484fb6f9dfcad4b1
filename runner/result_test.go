package runner

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{name: "AllUnlimited", cfg: Config{}},
		{name: "AllPositive", cfg: Config{
			MaxCPUTime:       LimitOf(1000),
			MaxRealTime:      LimitOf(2000),
			MaxMemory:        SizeLimitOf(128 << 20),
			MaxStack:         SizeLimitOf(32 << 20),
			MaxProcessNumber: LimitOf(1),
			MaxOutputSize:    SizeLimitOf(1 << 20),
		}},
		{name: "ZeroCPU", cfg: Config{MaxCPUTime: LimitOf(0)}, field: "max_cpu_time"},
		{name: "NegativeReal", cfg: Config{MaxRealTime: LimitOf(-5)}, field: "max_real_time"},
		{name: "ZeroMemory", cfg: Config{MaxMemory: SizeLimitOf(0)}, field: "max_memory"},
		{name: "ZeroStack", cfg: Config{MaxStack: SizeLimitOf(0)}, field: "max_stack"},
		{name: "ZeroProcess", cfg: Config{MaxProcessNumber: LimitOf(0)}, field: "max_process_number"},
		{name: "NegativeOutput", cfg: Config{MaxOutputSize: SizeLimitOf(-2)}, field: "max_output_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var le *LimitError
			if !errors.As(err, &le) {
				t.Fatalf("expected LimitError, got %v", err)
			}
			if le.Field != tt.field {
				t.Errorf("field = %s, want %s", le.Field, tt.field)
			}
		})
	}
}

func TestResultJudge(t *testing.T) {
	cfg := &Config{
		MaxCPUTime:  LimitOf(1000),
		MaxRealTime: LimitOf(2000),
		MaxMemory:   SizeLimitOf(64 << 20),
	}
	tests := []struct {
		name string
		r    Result
		want Verdict
	}{
		{name: "Accepted", r: Result{CPUTime: 10 * time.Millisecond}, want: Accepted},
		{name: "NonzeroExit", r: Result{ExitCode: 42}, want: RuntimeError},
		{name: "Signalled", r: Result{Signal: 11}, want: RuntimeError},
		{name: "ChildSetup", r: Result{ExitCode: 1, ChildError: "execve: no such file or directory"}, want: SystemError},
		{name: "Memory", r: Result{Signal: 11, Memory: 65 << 20}, want: MemoryLimitExceeded},
		{name: "RealTime", r: Result{Signal: 9, RealTime: 2001 * time.Millisecond}, want: RealTimeLimitExceeded},
		{name: "CPUOverridesReal", r: Result{Signal: 9, CPUTime: 1500 * time.Millisecond, RealTime: 2100 * time.Millisecond}, want: CPUTimeLimitExceeded},
		{name: "RunError", r: Result{Error: WaitFailed}, want: SystemError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Judge(cfg); got != tt.want {
				t.Errorf("Judge = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultReport(t *testing.T) {
	r := Result{
		Error:    Success,
		Verdict:  RuntimeError,
		CPUTime:  1234 * time.Millisecond,
		RealTime: 2*time.Second + 999*time.Microsecond,
		Memory:   Size(4 << 20),
		ExitCode: 42,
	}
	rep := r.Report()
	if rep.CPUTime != 1234 || rep.RealTime != 2000 || rep.Memory != 4<<20 {
		t.Errorf("unexpected report metrics %+v", rep)
	}
	if rep.Error != 0 || rep.ErrorName != "SUCCESS" || rep.Result != int(RuntimeError) || rep.ExitCode != 42 {
		t.Errorf("unexpected report status %+v", rep)
	}

	failed := Result{Error: RootRequired}.Report()
	if failed.Error != -5 || failed.ErrorName != "ROOT_REQUIRED" {
		t.Errorf("unexpected failed report %+v", failed)
	}
}

func TestErrorKindString(t *testing.T) {
	for k, want := range map[ErrorKind]string{
		Success:       "SUCCESS",
		InvalidConfig: "INVALID_CONFIG",
		CloneFailed:   "CLONE_FAILED",
		PthreadFailed: "PTHREAD_FAILED",
		WaitFailed:    "WAIT_FAILED",
		RootRequired:  "ROOT_REQUIRED",
		ErrorKind(99): "UNKNOWN",
	} {
		if k.String() != want {
			t.Errorf("%d.String() = %s, want %s", int(k), k.String(), want)
		}
	}
}

func TestSizeSet(t *testing.T) {
	tests := map[string]Size{
		"1024":  1024,
		"1k":    1 << 10,
		"2MiB":  2 << 20,
		"1G":    1 << 30,
		"512mb": 512 << 20,
	}
	for in, want := range tests {
		var s Size
		if err := s.Set(in); err != nil {
			t.Errorf("Set(%q): %v", in, err)
			continue
		}
		if s != want {
			t.Errorf("Set(%q) = %d, want %d", in, s, want)
		}
	}
	for _, in := range []string{"", "b", "12x", "17179869184g", "18446744073709551616"} {
		var s Size
		if err := s.Set(in); err == nil {
			t.Errorf("Set(%q) = %d, expected error", in, s)
		}
	}
	var s Size
	if err := s.Set("17179869183g"); err != nil || s != Size(17179869183<<30) {
		t.Errorf("Set(largest g) = %d, %v", s, err)
	}
	if Size(1536).String() != "1.5 KiB" {
		t.Errorf("String = %s", Size(1536))
	}
}
