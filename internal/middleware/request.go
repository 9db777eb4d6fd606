package middleware

import (
	"context"
	"time"

	"github.com/AnushaPriya2003/anusha/pkg/app"
	"github.com/AnushaPriya2003/anusha/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID request id header, reused when the caller sends one
// HeaderRequestID 请求 ID 响应头，调用方传入时沿用
const HeaderRequestID = "X-Request-ID"

// RequestInfo writes the app version and a request id to the response headers and the context
// RequestInfo 在响应头和上下文中写入应用版本与请求 ID
func RequestInfo(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(app.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Header("X-App-Name", name)
		c.Header("X-App-Version", version)

		c.Next()
	}
}

// ContextTimeout 设置请求上下文超时，0 表示不设置
func ContextTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// NoRoute 404 处理
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorNotFoundAPI.WithDetails(c.Request.Method + " " + c.Request.URL.Path))
		c.Abort()
	}
}

// NoMethod 405 处理
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorMethodNotAllowed.WithDetails(c.Request.Method + " " + c.Request.URL.Path))
		c.Abort()
	}
}
