package task

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger adapts zap to cron.Logger. cron reports every wake-up through
// Info, so it is logged at debug level.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

// NewCronLogger 创建 cron 使用的 zap 日志适配器
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{sugar: zl.WithOptions(zap.AddCallerSkip(1)).Sugar().Named("cron")}
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, zap.Error(err))...)
}
