// Package config loads run profiles for runprog.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/criyle/go-judger/runner"
)

const pathEnv = "PATH=/usr/local/bin:/usr/bin:/bin"

// Environment variables providing defaults, may be set in .env
const (
	EnvLogPath     = "JUDGER_LOG_PATH"
	EnvSeccompRule = "JUDGER_SECCOMP_RULE"
)

// Default returns the config used without a profile. All limits are
// unlimited.
func Default() runner.Config {
	return runner.Config{
		Env:         []string{pathEnv},
		LogPath:     os.Getenv(EnvLogPath),
		SeccompRule: os.Getenv(EnvSeccompRule),
	}
}

// Load reads a yaml profile on top of Default. Unknown keys are errors.
func Load(path string) (runner.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return runner.Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(b)
}

// Parse decodes a yaml profile on top of Default
func Parse(b []byte) (runner.Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return runner.Config{}, fmt.Errorf("config: decode profile: %w", err)
	}
	return c, nil
}
