package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logger defaults to a no-op so helpers are safe before setupLogging runs
// (and in tests, which never call it).
var logger = zap.NewNop().Sugar()

// setupLogging routes logs to stderr and a size-rotated file next to the
// binary. Debug level is opt-in; the file keeps a few rotations so a crash
// during a long session stays diagnosable.
func setupLogging(path string, debug bool) {
	rotated := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(os.Stderr), level),
		zapcore.NewCore(enc, zapcore.AddSync(rotated), level),
	)
	logger = zap.New(core, zap.AddCaller()).Sugar()
}

func syncLogging() {
	_ = logger.Sync()
}

func logInfo(format string, v ...interface{}) {
	logger.Infof(format, v...)
}

func logError(format string, v ...interface{}) {
	logger.Errorf(format, v...)
}

func logDebug(format string, v ...interface{}) {
	logger.Debugf(format, v...)
}
