package middleware

import (
	"strings"
	"time"

	"github.com/AnushaPriya2003/anusha/pkg/app"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// probePaths 探活和抓取请求，只在 debug 级别记录
var probePaths = []string{"/healthz", "/metrics", "/debug/"}

// AccessLogWithLogger 访问日志
// 探活和指标抓取记录为 debug，其余请求（手动触发、历史查询）记录为 info，5xx 记录为 warn
func AccessLogWithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		startTime := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.WarnLevel
		case isProbe(path):
			level = zapcore.DebugLevel
		}
		if ce := logger.Check(level, "http access"); ce != nil {
			ce.Write(
				zap.String("method", c.Request.Method),
				zap.String("path", path),
				zap.String("query", c.Request.URL.RawQuery),
				zap.Int("status", status),
				zap.Duration("time-cost", time.Since(startTime)),
				zap.String("ip", app.GetRequestIP(c)),
				zap.String("requestId", c.GetString(app.RequestIDKey)),
				zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
			)
		}
	}
}

func isProbe(path string) bool {
	for _, p := range probePaths {
		if path == p || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
			return true
		}
	}
	return false
}
