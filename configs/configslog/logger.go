package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger, SLog its sugared twin.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger configures the package loggers. Production encoding unless
// APP_ENV=development.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logging is not optional; nothing sensible to do without it.
		panic(err)
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger flushes buffered entries. Call via defer in main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func init() {
	// Tests and tools may use the loggers without calling InitLogger.
	if Log == nil {
		Log = zap.NewNop()
		SLog = Log.Sugar()
	}
}
