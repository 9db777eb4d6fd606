package task

import (
	"context"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/util"

	"go.uber.org/zap"
)

// HistoryCleanupTaskName 任务名称
const HistoryCleanupTaskName = "job-history-cleanup"

// HistoryCleanupTask 清理过期的执行记录
type HistoryCleanupTask struct {
	repo      domain.JobRunRepository
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// Name 返回任务名称
func (t *HistoryCleanupTask) Name() string {
	return HistoryCleanupTaskName
}

// Schedule 每天 03:30
func (t *HistoryCleanupTask) Schedule() string {
	return "0 30 3 * * *"
}

// IsStartupRun 是否立即执行一次
func (t *HistoryCleanupTask) IsStartupRun() bool {
	return true
}

// Run 执行清理任务
func (t *HistoryCleanupTask) Run(ctx context.Context) error {
	before := t.now().Add(-t.retention)
	n, err := t.repo.DeleteBefore(ctx, before)
	if err != nil {
		t.logger.Error("task log",
			zap.String(logger.FieldTask, t.Name()),
			zap.String("msg", "failed"),
			zap.Error(err))
		return err
	}

	t.logger.Info("task log",
		zap.String(logger.FieldTask, t.Name()),
		zap.String("msg", "success"),
		zap.Time("before", before),
		zap.Int64("deleted", n))
	return nil
}

// NewHistoryCleanupTask 创建清理任务，retentionTimeStr 为空或 0 时不启用
func NewHistoryCleanupTask(repo domain.JobRunRepository, retentionTimeStr string, zl *zap.Logger) (Task, error) {
	if repo == nil || retentionTimeStr == "" {
		return nil, nil
	}
	duration, err := util.ParseDuration(retentionTimeStr)
	if err != nil {
		return nil, err
	}

	if duration <= 0 {
		return nil, nil
	}
	if zl == nil {
		zl = zap.NewNop()
	}
	return &HistoryCleanupTask{repo: repo, retention: duration, logger: zl, now: time.Now}, nil
}

// init 自动注册清理任务
func init() {
	RegisterWithApp(HistoryCleanupTaskName, func(appContainer *app.App) (Task, error) {
		return NewHistoryCleanupTask(appContainer.JobRunRepo, appContainer.Config().Database.HistoryRetention, appContainer.Logger())
	})
}
