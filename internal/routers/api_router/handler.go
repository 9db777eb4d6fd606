// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/internal/task"
)

// Handler 基础 Handler 结构体，封装 App Container 和任务调度器
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App       *app.App
	Scheduler *task.Scheduler
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App, s *task.Scheduler) *Handler {
	return &Handler{App: a, Scheduler: s}
}
