package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/criyle/go-judger/runner"
)

func TestParse(t *testing.T) {
	t.Setenv(EnvLogPath, "")
	t.Setenv(EnvSeccompRule, "general")

	c, err := Parse([]byte(`
max_cpu_time: 1000
max_real_time: 3000
max_memory: 256m
max_stack: unlimited
max_output_size: 64MiB
exe_path: /usr/bin/python3
args: [main.py]
seccomp_rule: c_cpp
uid: 65534
`))
	if err != nil {
		t.Fatal(err)
	}
	uid := uint32(65534)
	want := runner.Config{
		MaxCPUTime:    runner.LimitOf(1000),
		MaxRealTime:   runner.LimitOf(3000),
		MaxMemory:     runner.SizeLimitOf(256 << 20),
		MaxStack:      runner.SizeLimit{},
		MaxOutputSize: runner.SizeLimitOf(64 << 20),
		ExePath:       "/usr/bin/python3",
		Args:          []string{"main.py"},
		Env:           []string{pathEnv},
		SeccompRule:   "c_cpp",
		UID:           &uid,
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("Parse = %+v, want %+v", c, want)
	}
}

func TestParseDefault(t *testing.T) {
	t.Setenv(EnvLogPath, "/var/log/judger.log")
	t.Setenv(EnvSeccompRule, "")

	c, err := Parse([]byte("max_process_number: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.LogPath != "/var/log/judger.log" {
		t.Errorf("log path = %q", c.LogPath)
	}
	if !c.MaxCPUTime.IsUnlimited() || c.MaxProcessNumber != runner.LimitOf(1) {
		t.Errorf("limits = %v", &c)
	}
}

func TestParseError(t *testing.T) {
	for _, s := range []string{
		"max_cpu_time: fast\n",
		"max_memory: 1x\n",
		"no_such_key: 1\n",
	} {
		if _, err := Parse([]byte(s)); err == nil {
			t.Errorf("Parse(%q) succeeded", s)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("exe_path: /bin/true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.ExePath != "/bin/true" {
		t.Errorf("exe path = %q", c.ExePath)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("load of missing profile succeeded")
	}
}
