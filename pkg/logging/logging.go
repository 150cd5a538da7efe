// Package logging sets up the run log: a console stream mirrored into a
// size-bounded log file.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp prefix of every log line
const TimeLayout = "2006-01-02+15:04:05"

// Options configures New
type Options struct {
	FilePath string
	MaxLines int
	Console  *os.File // defaults to os.Stdout
	Level    zapcore.Level
}

// Logger bundles the structured logger with a plain writer that reaches the
// same destinations, for tabular output.
type Logger struct {
	*zap.Logger
	Output io.Writer
	file   *os.File
}

// New truncates the log file to its last MaxLines lines, opens it for append
// and returns a logger that writes every entry to both the console and the file.
func New(opts Options) (*Logger, error) {
	if opts.Console == nil {
		opts.Console = os.Stdout
	}

	if err := TruncateFile(opts.FilePath, opts.MaxLines); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %s: %w", opts.FilePath, err)
	}

	colored := isatty.IsTerminal(opts.Console.Fd()) || isatty.IsCygwinTerminal(opts.Console.Fd())
	core := zapcore.NewTee(
		zapcore.NewCore(newEncoder(colored), zapcore.Lock(opts.Console), opts.Level),
		zapcore.NewCore(newEncoder(false), zapcore.AddSync(file), opts.Level),
	)

	return &Logger{
		Logger: zap.New(core),
		Output: io.MultiWriter(opts.Console, file),
		file:   file,
	}, nil
}

// Close flushes pending entries and closes the log file
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func newEncoder(colored bool) zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	if colored {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}
