package internal

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeffrom/logentries/config"
)

var (
	loggerMu sync.RWMutex
	logger   = newLogger(zapcore.DebugLevel)
)

func newLogger(level zapcore.Level) *zap.SugaredLogger {
	zconf := zap.NewDevelopmentConfig()
	zconf.Level = zap.NewAtomicLevelAt(level)
	zconf.OutputPaths = []string{"stderr"}
	l, err := zconf.Build(zap.AddCallerSkip(2))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// SetLogger replaces the logger used for diagnostics. Passing nil discards
// all output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l.WithOptions(zap.AddCallerSkip(2)).Sugar()
	loggerMu.Unlock()
}

func getLogger() *zap.SugaredLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func debugf(s string, args ...interface{}) {
	getLogger().Debugf(s, args...)
}

// Debugf logs a debug message when the configuration is verbose.
func Debugf(conf *config.Config, s string, args ...interface{}) {
	if conf == nil || !conf.Verbose {
		return
	}
	debugf(s, args...)
}

func warnf(s string, args ...interface{}) {
	getLogger().Warnf(s, args...)
}

// IgnoreError logs the error at debug level, if one occurred, when verbose
// is set.
func IgnoreError(verbose bool, err error) {
	if verbose && err != nil {
		debugf("error ignored: %+v", err)
	}
}

// LogError logs the error if one occurred
func LogError(err error) {
	if err != nil {
		warnf("%+v", err)
	}
}

// Sync flushes buffered log entries.
func Sync() error {
	return getLogger().Sync()
}
