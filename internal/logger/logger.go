// Package logger builds the zap loggers handed to each run.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a logger.
type Options struct {
	// Verbose enables debug level output.
	Verbose bool
	// Output receives log lines. Defaults to stderr.
	Output io.Writer
}

// Logger wraps a sugared logger with an adjustable level.
type Logger struct {
	*zap.SugaredLogger
	atom zap.AtomicLevel
}

// New returns a console logger. Callers own it and must call Sync before exit.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	atom := zap.NewAtomicLevel()
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.CallerKey = zapcore.OmitKey

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(out)),
		atom,
	)
	l := &Logger{SugaredLogger: zap.New(core).Sugar(), atom: atom}
	l.SetDebug(opts.Verbose)
	return l
}

// SetDebug toggles debug output.
func (l *Logger) SetDebug(enable bool) {
	if enable {
		l.atom.SetLevel(zap.DebugLevel)
		return
	}
	l.atom.SetLevel(zap.InfoLevel)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}
