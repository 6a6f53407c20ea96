package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// Field is re-exported so callers don't need to import zap directly.
type Field = zap.Field

var defaultLogger = zap.NewNop()

type Config struct {
	Level      string // minimum level (zap level names)
	Format     string // "json" or "console"
	FilterRule string // zapfilter rule set, e.g. "debug:sql info:*"
}

// Init sets up the package level logger. Called once from the CLI root
// before any subcommand runs.
func Init(cfg Config) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "text", "":
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	if cfg.FilterRule != "" {
		filter, fErr := zapfilter.ParseRules(cfg.FilterRule)
		if fErr != nil {
			return fmt.Errorf("invalid log filter %q: %w", cfg.FilterRule, fErr)
		}
		core = zapfilter.NewFilteringCore(core, filter)
	}
	defaultLogger = zap.New(core)
	return nil
}

// Named returns a child logger for a subsystem; the name takes part in
// zapfilter rule matching.
func Named(name string) *zap.Logger {
	return defaultLogger.Named(name)
}

func Sync() { _ = defaultLogger.Sync() }

func Debug(msg string, fields ...Field) { defaultLogger.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { defaultLogger.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { defaultLogger.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { defaultLogger.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { defaultLogger.Fatal(msg, fields...) }

func String(key, val string) Field { return zap.String(key, val) }

func ErrorField(err error) Field { return zap.Error(err) }
