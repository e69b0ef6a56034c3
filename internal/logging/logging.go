// Package logging builds the application logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared logger writing to stderr so log lines never mix
// with the interactive prompt on stdout. JSON encoding when DOCCHAT_ENV=prod,
// console encoding otherwise.
func New() *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if os.Getenv("DOCCHAT_ENV") == "prod" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.InfoLevel)
	return zap.New(core).Sugar()
}
