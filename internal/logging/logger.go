// Package logging builds pulseagent's zap logger, supporting two formats:
// a human console encoder for interactive runs and a JSON encoder for
// anything piping logs elsewhere.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pulseagent/pulseagent/internal/config"
)

// New builds a zap.SugaredLogger per cfg. An unparseable level falls back to
// info rather than failing startup over a typo in a config file.
func New(cfg config.LogConfig) *zap.SugaredLogger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")

	var encoder zapcore.Encoder
	if cfg.JSON {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stdout)), level)
	logger := zap.New(core, zap.AddCaller()).Named("pulseagent")
	return logger.Sugar()
}
