package cmd

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// bootstrapLogger 启动阶段日志器，用于配置的日志器初始化之前
var bootstrapLogger *zap.Logger

func init() {
	bootstrapLogger = newConsoleLogger(bootstrapLevel(os.Getenv("LOG_LEVEL"), os.Getenv("DEBUG")))
}

// bootstrapLevel LOG_LEVEL 优先，其次 DEBUG 非空时为 debug，默认 info
func bootstrapLevel(logLevel, debug string) zapcore.Level {
	if logLevel != "" {
		if l, err := zapcore.ParseLevel(logLevel); err == nil {
			return l
		}
	}
	if debug != "" {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func newConsoleLogger(level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level)
	return zap.New(core, zap.AddCaller())
}

// BootstrapLogger gets the bootstrap stage logger
// BootstrapLogger 获取启动阶段日志器
func BootstrapLogger() *zap.Logger {
	return bootstrapLogger
}
