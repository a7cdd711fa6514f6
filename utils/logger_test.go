package utils

import (
	"testing"

	"workhive/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfiguredLogLevelApplied(t *testing.T) {
	prevLevel := config.AppConfig.LogLevel
	prevLogger := Logger
	defer func() {
		config.AppConfig.LogLevel = prevLevel
		Logger = prevLogger
	}()

	config.AppConfig.LogLevel = "warn"
	InitializeLogger()

	if Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info enabled despite LOG_LEVEL=warn")
	}
	if !Logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn disabled despite LOG_LEVEL=warn")
	}
}

func TestUnknownLogLevelKeepsDefault(t *testing.T) {
	prevLevel := config.AppConfig.LogLevel
	prevLogger := Logger
	defer func() {
		config.AppConfig.LogLevel = prevLevel
		Logger = prevLogger
	}()

	config.AppConfig.LogLevel = "shouty"
	InitializeLogger()

	// Development default is debug.
	if !Logger.Core().Enabled(zap.DebugLevel) {
		t.Error("unparseable LOG_LEVEL changed the default level")
	}
}
