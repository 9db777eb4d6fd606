package app

import (
	"strings"

	"github.com/AnushaPriya2003/anusha/pkg/code"

	"github.com/gin-gonic/gin"
)

// RequestIDKey context key holding the request id
// RequestIDKey 上下文中保存请求 ID 的键
const RequestIDKey = "request_id"

type Response struct {
	Ctx *gin.Context
}

// Res is the unified response envelope of the ops API
// Res 运维接口统一的响应结构
type Res struct {
	Code      int         `json:"code"`
	Status    bool        `json:"status"`
	Message   interface{} `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// ToResponse writes codeObj with the HTTP status it carries
// ToResponse 按 codeObj 携带的 HTTP 状态码输出
func (r *Response) ToResponse(codeObj *code.Code) {
	status := codeObj.StatusCode()
	r.Ctx.Set("status_code", status)

	content := Res{
		Code:      codeObj.Code(),
		Status:    codeObj.Status(),
		Message:   codeObj.Lang.GetMessage(),
		Data:      codeObj.Data(),
		RequestID: r.Ctx.GetString(RequestIDKey),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	r.Ctx.JSON(status, content)
}
