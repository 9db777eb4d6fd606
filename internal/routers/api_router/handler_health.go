package api_router

import (
	"time"

	"github.com/AnushaPriya2003/anusha/internal/dto"
	pkgapp "github.com/AnushaPriya2003/anusha/pkg/app"
	"github.com/AnushaPriya2003/anusha/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(h *Handler) *HealthHandler {
	return &HealthHandler{Handler: h}
}

// Check 健康检查接口
// 数据库不可用或服务正在关闭时返回 503
func (h *HealthHandler) Check(c *gin.Context) {
	cfg := h.App.Config()
	response := dto.HealthDTO{
		Status:   "healthy",
		Version:  h.App.Version().Version,
		Uptime:   time.Since(h.App.StartTime).Seconds(),
		Database: "disabled",
		Storage:  cfg.Storage.Type,
		Job:      "absent",
		Tasks:    taskStatuses(c, h.Handler),
	}

	if cfg.Job != nil {
		response.Job = "enabled"
		if cfg.Job.Disabled {
			response.Job = "disabled"
		}
	}

	if h.App.DB != nil {
		response.Database = "connected"
		sqlDB, err := h.App.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			h.App.Logger().Warn("health check database ping failed", zap.Error(err))
			response.Status = "unhealthy"
			response.Database = "error"
		}
	}
	if h.App.IsShuttingDown() {
		response.Status = "unhealthy"
	}

	if response.Status != "healthy" {
		pkgapp.NewResponse(c).ToResponse(code.ErrorUnhealthy.WithData(response))
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}
