// Package logging provides the Logger interface used throughout
// drpl-signal, modeled on device/logger.go's Debug/Info/Error shape but
// backed by go.uber.org/zap's SugaredLogger rather than a hand-wrapped
// stdlib *log.Logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LevelSilent = iota
	LevelError
	LevelInfo
	LevelDebug
)

// Logger is the logging surface every component depends on.
type Logger interface {
	Debug(v ...interface{})
	Debugf(f string, v ...interface{})
	Info(v ...interface{})
	Infof(f string, v ...interface{})
	Error(v ...interface{})
	Errorf(f string, v ...interface{})
	With(keysAndValues ...interface{}) Logger
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// New builds a Logger at the given level, writing structured JSON to
// stderr in production-shaped configurations and console-formatted output
// for LevelDebug, a chattier format while developing.
func New(level int, component string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch level {
	case LevelSilent:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.FatalLevel + 1)
	case LevelError:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	case LevelInfo:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	base, err := cfg.Build()
	if err != nil {
		// zap.NewProductionConfig().Build() only fails on a malformed
		// encoder/sink configuration, which this function never produces.
		base = zap.NewNop()
	}
	return &zapLogger{s: base.Sugar().Named(component)}
}

func (l *zapLogger) Debug(v ...interface{})            { l.s.Debug(v...) }
func (l *zapLogger) Debugf(f string, v ...interface{}) { l.s.Debugf(f, v...) }
func (l *zapLogger) Info(v ...interface{})             { l.s.Info(v...) }
func (l *zapLogger) Infof(f string, v ...interface{})  { l.s.Infof(f, v...) }
func (l *zapLogger) Error(v ...interface{})            { l.s.Error(v...) }
func (l *zapLogger) Errorf(f string, v ...interface{}) { l.s.Errorf(f, v...) }

func (l *zapLogger) With(keysAndValues ...interface{}) Logger {
	return &zapLogger{s: l.s.With(keysAndValues...)}
}

// Nop returns a Logger that discards everything, useful in tests.
func Nop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}
