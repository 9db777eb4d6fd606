package api_router

import (
	"errors"

	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/internal/dto"
	"github.com/AnushaPriya2003/anusha/internal/task"
	pkgapp "github.com/AnushaPriya2003/anusha/pkg/app"
	"github.com/AnushaPriya2003/anusha/pkg/code"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/timex"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskHandler 任务管理 API 路由处理器
type TaskHandler struct {
	*Handler
}

// NewTaskHandler 创建 TaskHandler 实例
func NewTaskHandler(h *Handler) *TaskHandler {
	return &TaskHandler{Handler: h}
}

// List 获取所有任务的状态和最近一次执行记录
func (h *TaskHandler) List(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(taskStatuses(c, h.Handler)))
}

// Run 异步触发一次任务执行
// 返回 202 表示已开始，409 表示任务正在执行，404 表示任务不存在
func (h *TaskHandler) Run(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	name := c.Param("name")

	if h.App.IsShuttingDown() {
		response.ToResponse(code.ErrorUnhealthy.WithDetails("shutting down"))
		return
	}

	err := h.Scheduler.Trigger(name, domain.TriggerManual)
	switch {
	case err == nil:
		h.App.Logger().Info("task triggered via http",
			zap.String(logger.FieldTask, name),
			zap.String("ip", pkgapp.GetRequestIP(c)))
		response.ToResponse(code.TaskAccepted.WithData(dto.TaskRunDTO{Task: name, Trigger: string(domain.TriggerManual)}))
	case errors.Is(err, task.ErrTaskNotFound):
		response.ToResponse(code.ErrorTaskNotFound.WithDetails(name))
	case errors.Is(err, domain.ErrAlreadyRunning):
		response.ToResponse(code.ErrorTaskRunning.WithDetails(name))
	case errors.Is(err, task.ErrSchedulerStopping):
		response.ToResponse(code.ErrorUnhealthy.WithDetails("shutting down"))
	default:
		response.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
	}
}

// History 获取任务的执行记录
func (h *TaskHandler) History(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if h.App.JobRunRepo == nil {
		response.ToResponse(code.ErrorHistoryDisabled)
		return
	}

	params := &dto.JobRunListRequest{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	runs, err := h.App.JobRunRepo.List(c.Request.Context(), c.Param("name"), params.Limit)
	if err != nil {
		h.App.Logger().Error("list job runs failed", zap.Error(err))
		response.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewJobRunDTOList(runs)))
}

// taskStatuses 汇总调度器状态和执行记录
func taskStatuses(c *gin.Context, h *Handler) []*dto.TaskStatusDTO {
	if h.Scheduler == nil {
		return []*dto.TaskStatusDTO{}
	}
	statuses := h.Scheduler.Statuses()
	out := make([]*dto.TaskStatusDTO, 0, len(statuses))
	for _, s := range statuses {
		item := &dto.TaskStatusDTO{
			Name:     s.Name,
			Schedule: s.Schedule,
			Running:  s.Running,
		}
		if !s.NextRun.IsZero() {
			item.NextRun = timex.Time(s.NextRun)
		}
		if h.App.JobRunRepo != nil {
			last, err := h.App.JobRunRepo.Last(c.Request.Context(), s.Name)
			if err != nil {
				h.App.Logger().Warn("load last job run failed", zap.String(logger.FieldTask, s.Name), zap.Error(err))
			}
			item.LastRun = dto.NewJobRunDTO(last)
		}
		out = append(out, item)
	}
	return out
}
