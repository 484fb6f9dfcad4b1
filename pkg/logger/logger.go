// Package logger opens the diagnostic log sink of a run.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// DefaultConfig logs everything in console format
var DefaultConfig = Config{Level: "debug", Format: "console"}

// Logger is a zap logger owning its log file
type Logger struct {
	*zap.Logger
	file io.Closer
}

// Nop returns a logger discarding everything
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Open creates a logger appending to path. Empty path gives a no-op
// logger, "stderr" and "stdout" write to the standard streams.
func Open(path string) (*Logger, error) {
	return OpenWithConfig(path, DefaultConfig)
}

// OpenWithConfig is Open with an explicit level and format
func OpenWithConfig(path string, cfg Config) (*Logger, error) {
	if path == "" {
		return Nop(), nil
	}

	level := zapcore.DebugLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	var (
		ws   zapcore.WriteSyncer
		file io.Closer
	)
	switch path {
	case "stdout":
		ws = zapcore.Lock(os.Stdout)
	case "stderr":
		ws = zapcore.Lock(os.Stderr)
	default:
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		ws = zapcore.AddSync(f)
		file = f
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), ws, level)
	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{Logger: l, file: file}, nil
}

// Close flushes the logger and closes its file
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func newEncoder(format string) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == "json" {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(time.RFC3339))
}
