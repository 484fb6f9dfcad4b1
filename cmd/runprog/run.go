package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/criyle/go-judger/cmd/runprog/config"
	"github.com/criyle/go-judger/pkg/logger"
	"github.com/criyle/go-judger/pkg/metrics"
	"github.com/criyle/go-judger/runner"
	"github.com/criyle/go-judger/runner/judger"
)

type runOptions struct {
	profile     string
	result      string
	metricsFile string
	logConfig   logger.Config
}

func newRunCmd() *cobra.Command {
	var (
		opts runOptions
		// flag values, copied onto the profile when changed
		flagConfig runner.Config
	)
	cmd := &cobra.Command{
		Use:   "run [flags] -- <exe> [args...]",
		Short: "Run a program and print the result report",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildConfig(cmd.Flags(), opts.profile, args)
			if err != nil {
				return err
			}
			return runProgram(cmd.OutOrStdout(), c, &opts)
		},
	}
	fs := cmd.Flags()
	bindConfigFlags(fs, &flagConfig)
	fs.StringVarP(&opts.profile, "config", "c", "", "yaml profile, flags override its values")
	fs.StringVar(&opts.result, "result", "stdout", "file name for the result report")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write metrics in the node exporter textfile format")
	fs.StringVar(&opts.logConfig.Level, "log-level", "debug", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.logConfig.Format, "log-format", "console", "log format (console, json)")
	return cmd
}

// bindConfigFlags adds a flag for every field of c
func bindConfigFlags(fs *pflag.FlagSet, c *runner.Config) {
	fs.Var(&c.MaxCPUTime, "max-cpu-time", "CPU time limit in ms (integer or unlimited)")
	fs.Var(&c.MaxRealTime, "max-real-time", "real time limit in ms (integer or unlimited)")
	fs.Var(&c.MaxMemory, "max-memory", "memory limit (e.g. 256m)")
	fs.Var(&c.MaxStack, "max-stack", "stack limit (e.g. 8m)")
	fs.Var(&c.MaxProcessNumber, "max-process-number", "process number limit")
	fs.Var(&c.MaxOutputSize, "max-output-size", "output file size limit (e.g. 64m)")
	fs.BoolVar(&c.MemoryLimitCheckOnly, "memory-limit-check-only", false, "only check memory after the run, no address space limit")
	fs.StringVar(&c.ExePath, "exe-path", "", "executable path, default to the first argument")
	fs.StringArrayVar(&c.Env, "env", nil, "environment variable for the program, can be repeated")
	fs.StringVar(&c.InputPath, "input", "", "stdin file name")
	fs.StringVar(&c.OutputPath, "output", "", "stdout file name")
	fs.StringVar(&c.ErrorPath, "error", "", "stderr file name")
	fs.StringVar(&c.LogPath, "log-path", "", "log file name (stdout, stderr or a path)")
	fs.StringVar(&c.SeccompRule, "seccomp-rule", "", "seccomp rule (c_cpp, general, golang)")
	fs.Var(idFlag{&c.UID}, "uid", "uid for the program")
	fs.Var(idFlag{&c.GID}, "gid", "gid for the program")
}

// buildConfig loads the profile (or the default config) and applies the
// changed flags of fs on top of it
func buildConfig(fs *pflag.FlagSet, profile string, args []string) (runner.Config, error) {
	c := config.Default()
	if profile != "" {
		var err error
		if c, err = config.Load(profile); err != nil {
			return c, err
		}
	}

	// binding resets the fields to the flag defaults
	base := c
	dst := pflag.NewFlagSet("config", pflag.ContinueOnError)
	bindConfigFlags(dst, &c)
	c = base
	var err error
	fs.Visit(func(f *pflag.Flag) {
		d := dst.Lookup(f.Name)
		if d == nil || err != nil {
			return
		}
		if s, ok := f.Value.(pflag.SliceValue); ok {
			err = d.Value.(pflag.SliceValue).Replace(s.GetSlice())
			return
		}
		err = d.Value.Set(f.Value.String())
	})
	if err != nil {
		return c, err
	}

	switch {
	case fs.Changed("exe-path"):
		c.Args = args
	case len(args) > 0:
		c.ExePath, c.Args = args[0], args[1:]
	}
	if c.ExePath == "" {
		return c, fmt.Errorf("no program to run")
	}
	return c, nil
}

func runProgram(stdout io.Writer, c runner.Config, opts *runOptions) error {
	l, err := logger.OpenWithConfig(c.LogPath, opts.logConfig)
	if err != nil {
		return err
	}
	defer l.Close()

	col := metrics.NewCollector()
	r := &judger.Runner{
		Config:  c,
		Metrics: col,
		Logger:  l.Logger,
	}
	ret := r.Run()

	if err := writeReport(stdout, opts.result, ret.Report()); err != nil {
		return err
	}
	if opts.metricsFile != "" {
		if err := col.WriteTextfile(opts.metricsFile); err != nil {
			return err
		}
	}
	if ret.Error != runner.Success {
		return fmt.Errorf("run failed: %v", ret.Error)
	}
	return nil
}

func writeReport(stdout io.Writer, name string, rep runner.Report) error {
	w := stdout
	if name != "stdout" && name != "" {
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create result file: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// idFlag sets an optional uid or gid
type idFlag struct {
	p **uint32
}

func (f idFlag) String() string {
	if f.p == nil || *f.p == nil {
		return ""
	}
	return strconv.FormatUint(uint64(**f.p), 10)
}

func (f idFlag) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	id := uint32(v)
	*f.p = &id
	return nil
}

func (f idFlag) Type() string {
	return "uint32"
}
