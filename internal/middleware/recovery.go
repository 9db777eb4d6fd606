package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/AnushaPriya2003/anusha/pkg/app"
	"github.com/AnushaPriya2003/anusha/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件
func RecoveryWithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		defer func() {
			if r := recover(); r != nil {
				var errorMsg string
				switch err := r.(type) {
				case string:
					errorMsg = err
				case error:
					errorMsg = err.Error()
				default:
					errorMsg = fmt.Sprintf("%v", err)
				}

				logger.Error("Recovered from panic",
					zap.String("router", path),
					zap.String("method", c.Request.Method),
					zap.String("query", query),
					zap.String("ip", app.GetRequestIP(c)),
					zap.String("requestId", c.GetString(app.RequestIDKey)),
					zap.String("panic", errorMsg),
					zap.String("stack", string(debug.Stack())),
				)

				app.NewResponse(c).ToResponse(code.ErrorServerInternal.WithDetails(errorMsg))
				c.Abort()
			}
		}()

		c.Next()
	}
}
