// Package log is the process-wide logger, a thin sugared wrapper around zap.
package log

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured logging field.
type Field = zapcore.Field

var (
	logger  *zap.Logger
	sugared *zap.SugaredLogger

	atom = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

var levelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"fatal": zapcore.FatalLevel,
}

func init() {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	if isatty.IsTerminal(os.Stderr.Fd()) {
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.EncodeCaller = zapcore.ShortCallerEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(os.Stderr), atom)
	logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	sugared = logger.Sugar()
}

// SetLevel changes the minimum level logged. Unknown names fall back to warn.
func SetLevel(level string) {
	lvl, ok := levelMap[level]
	if !ok {
		lvl = zapcore.WarnLevel
	}
	atom.SetLevel(lvl)
}

// Enabled reports whether messages at level would be written.
func Enabled(level zapcore.Level) bool {
	return atom.Enabled(level)
}

// Debug logs msg with structured fields at debug level.
func Debug(msg string, fields ...Field) {
	logger.Debug(msg, fields...)
}

// Debugf logs a formatted message at debug level.
func Debugf(template string, args ...interface{}) {
	sugared.Debugf(template, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(template string, args ...interface{}) {
	sugared.Errorf(template, args...)
}

// Sync flushes buffered entries.
func Sync() error {
	return logger.Sync()
}
