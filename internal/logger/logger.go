package logger

import (
	"os"

	"github.com/all-man/site-feeds/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface the pipeline components rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

// zapLogger adapts the package-level zap logger to Logger.
type zapLogger struct{}

func (zapLogger) InfoObj(msg, key string, obj interface{})  { write(zapcore.InfoLevel, msg, key, obj) }
func (zapLogger) DebugObj(msg, key string, obj interface{}) { write(zapcore.DebugLevel, msg, key, obj) }
func (zapLogger) WarnObj(msg, key string, obj interface{})  { write(zapcore.WarnLevel, msg, key, obj) }
func (zapLogger) ErrorObj(msg, key string, obj interface{}) { write(zapcore.ErrorLevel, msg, key, obj) }

// Init initializes a zap logger using settings from config and returns it
// behind the Logger interface.
func Init(cfg *config.Config) (Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		ParseLevel(cfg.LogLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel))
	logger = logger.With(zap.String("app", cfg.AppName))
	S = logger.Sugar()
	return zapLogger{}, nil
}

// ParseLevel maps a config string to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Close flushes any buffered loggers.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}

// Minimal object logging helpers -------------------------------------------------
// These log the given object as a single structured field named `key`.

func InfoObj(msg, key string, obj interface{})  { write(zapcore.InfoLevel, msg, key, obj) }
func DebugObj(msg, key string, obj interface{}) { write(zapcore.DebugLevel, msg, key, obj) }
func WarnObj(msg, key string, obj interface{})  { write(zapcore.WarnLevel, msg, key, obj) }
func ErrorObj(msg, key string, obj interface{}) { write(zapcore.ErrorLevel, msg, key, obj) }

// write is always two frames below the caller; Init sets the caller skip to match.
func write(level zapcore.Level, msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	if ce := S.Desugar().Check(level, msg); ce != nil {
		ce.Write(zap.Any(key, obj))
	}
}
