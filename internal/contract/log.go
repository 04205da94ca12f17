package contract

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Log formats accepted by InitLogger.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var logger = zap.NewNop()

// InitLogger builds the shared logger. JSON output uses the production encoder,
// anything else the console encoder. Unknown levels fall back to info.
func InitLogger(levelStr, format string) error {
	var level zap.AtomicLevel
	switch strings.ToLower(levelStr) {
	case "debug":
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	var cfg zap.Config
	if format == LogFormatJSON {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built
	return nil
}

// SetLogger replaces the shared logger. Tests use it with zaptest or observer cores.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Log returns the shared logger. It discards everything until InitLogger runs.
func Log() *zap.Logger {
	return logger
}

// LogFatal logs an error and exits the program. Before InitLogger runs the
// message goes straight to stderr.
func LogFatal(msg string, err error) {
	if logger.Core().Enabled(zap.ErrorLevel) {
		logger.Error(msg, zap.Error(err))
		_ = logger.Sync()
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	}
	os.Exit(1)
}

// LogWarn logs a warning with its cause.
func LogWarn(msg string, err error) {
	logger.Warn(msg, zap.Error(err))
}
