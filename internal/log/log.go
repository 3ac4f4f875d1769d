// Package log provides the command-line logger, built on zap.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// log is handed to callers that log through it directly
	log *zap.SugaredLogger

	// helper skips one frame so the package functions below report
	// their caller rather than this file
	helper *zap.SugaredLogger
)

// Init initializes the package-level logger. Debug mode uses zap's
// human-readable development encoder; otherwise JSON at info level.
// Both write to stderr so that results can go to stdout.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stderr"}

	zapLogger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	set(zapLogger)
	return nil
}

func set(base *zap.Logger) {
	log = base.Sugar()
	helper = base.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// GetSugaredLogger returns the sugared logger instance
func GetSugaredLogger() *zap.SugaredLogger {
	if log == nil {
		// Fallback logger if not initialized
		baseLogger, _ := zap.NewProduction()
		set(baseLogger)
	}
	return log
}

func getHelper() *zap.SugaredLogger {
	GetSugaredLogger()
	return helper
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		log.Sync()
	}
}

func Debugw(msg string, keysAndValues ...interface{}) {
	getHelper().Debugw(msg, keysAndValues...)
}

func Infof(template string, args ...interface{}) {
	getHelper().Infof(template, args...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	getHelper().Infow(msg, keysAndValues...)
}

func Errorf(template string, args ...interface{}) {
	getHelper().Errorf(template, args...)
}
