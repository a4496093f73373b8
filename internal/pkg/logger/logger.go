package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"transaction-risk-engine/internal/pkg/config"
)

// New builds the service logger from the log configuration. The "console"
// format gives a development-friendly encoder; everything else gets
// production JSON output.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
