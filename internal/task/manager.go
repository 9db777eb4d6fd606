package task

import (
	"context"
	"fmt"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/pkg/logger"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	app       *app.App
	logger    *zap.Logger
}

// NewManager 创建任务管理器，调度时区取自任务配置
func NewManager(appContainer *app.App) *Manager {
	loc := time.Local
	if job := appContainer.Config().Job; job != nil {
		if l, err := job.Location(); err == nil {
			loc = l
		}
	}
	return &Manager{
		scheduler: NewScheduler(appContainer.Logger(), loc),
		app:       appContainer,
		logger:    appContainer.Logger(),
	}
}

// RegisterTasks 创建并注册所有任务，工厂返回 nil 的任务不注册
func (m *Manager) RegisterTasks() error {
	for _, r := range registrations() {
		t, err := r.factory(m.app)
		if err != nil {
			m.logger.Warn("failed to create task", zap.String(logger.FieldTask, r.name), zap.Error(err))
			return fmt.Errorf("create task %s: %w", r.name, err)
		}
		if t == nil {
			m.logger.Info("task not enabled", zap.String(logger.FieldTask, r.name))
			continue
		}
		if t.Name() != r.name {
			return fmt.Errorf("task registered as %s reports name %s", r.name, t.Name())
		}
		if err := m.scheduler.AddTask(t); err != nil {
			return err
		}
	}
	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start(ctx context.Context) {
	m.scheduler.Start(ctx)
}

// Stop 停止调度并等待任务完成
func (m *Manager) Stop(ctx context.Context) error {
	return m.scheduler.Stop(ctx)
}

// Scheduler 获取调度器
func (m *Manager) Scheduler() *Scheduler {
	return m.scheduler
}
