package api_router

import (
	"github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/internal/dto"
	pkgapp "github.com/AnushaPriya2003/anusha/pkg/app"
	"github.com/AnushaPriya2003/anusha/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionHandler version info API router handler
// VersionHandler 版本信息 API 路由处理器
type VersionHandler struct {
	*Handler
}

// NewVersionHandler creates VersionHandler instance
// NewVersionHandler 创建 VersionHandler 实例
func NewVersionHandler(h *Handler) *VersionHandler {
	return &VersionHandler{Handler: h}
}

// ServerVersion retrieves server version information
// ServerVersion 获取服务版本信息
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	versionInfo := h.App.Version()
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(dto.VersionDTO{
		Name:      app.Name,
		Version:   versionInfo.Version,
		GitTag:    versionInfo.GitTag,
		BuildTime: versionInfo.BuildTime,
	}))
}
