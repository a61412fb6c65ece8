// Package logger holds the process-wide zap logger.
//
// Until Init runs every call is discarded, so packages may log from tests
// without setup.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	Log   = zap.NewNop()
	Sugar = Log.Sugar()
)

// FileConfig controls the rotating JSON log file. An empty Path disables it.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func DefaultFileConfig(path string) FileConfig {
	return FileConfig{Path: path, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
}

// Options selects the outputs of a logger built by New.
type Options struct {
	Level   string    // debug, info, warn or error; empty means info
	Console io.Writer // human-readable output, nil for none
	File    FileConfig
}

// Init installs a logger writing to stdout and, when logFile is set, to a
// rotating JSON file at that path.
func Init(level, logFile string) error {
	opts := Options{Level: level, Console: os.Stdout}
	if logFile != "" {
		opts.File = DefaultFileConfig(logFile)
	}
	return InitWith(opts)
}

// InitWith installs the logger described by opts. The installed logger is
// left unchanged on error.
func InitWith(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	install(l)
	return nil
}

// New builds a logger without installing it. It fails on an unknown level or
// when the log file's directory cannot be created.
func New(opts Options) (*zap.Logger, error) {
	lvl, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cores []zapcore.Core
	if opts.Console != nil {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.ConsoleSeparator = " "
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(opts.Console), lvl))
	}
	if f := opts.File; f.Path != "" {
		if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
		sink := &lumberjack.Logger{
			Filename:   f.Path,
			MaxSize:    f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAge:     f.MaxAgeDays,
			Compress:   f.Compress,
			LocalTime:  true,
		}
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "time"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.EncodeDuration = zapcore.StringDurationEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(sink), lvl))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func install(l *zap.Logger) {
	Log = l
	Sugar = l.Sugar()
}

// Named returns a child of the currently installed logger.
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "":
		return zapcore.InfoLevel, nil
	case "debug", "info", "warn", "error":
		return zapcore.ParseLevel(level)
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

func Sync() {
	_ = Log.Sync()
}

func Debug(msg string, fields ...zap.Field) { Log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Log.Info(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Log.Error(msg, fields...) }

// Fatal logs at fatal level, flushes and exits the process with status 1.
// Deferred functions do not run.
func Fatal(msg string, fields ...zap.Field) { Log.Fatal(msg, fields...) }
