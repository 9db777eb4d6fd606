package task

import (
	"context"

	"github.com/AnushaPriya2003/anusha/internal/domain"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	Schedule() string              // cron 表达式，为空时只能手动触发
	IsStartupRun() bool            // 是否立即执行一次
}

type triggerKey struct{}

// WithTrigger 在上下文中记录触发方式
func WithTrigger(ctx context.Context, trigger domain.RunTrigger) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

// TriggerFrom 获取触发方式，默认为 manual
func TriggerFrom(ctx context.Context) domain.RunTrigger {
	if t, ok := ctx.Value(triggerKey{}).(domain.RunTrigger); ok {
		return t
	}
	return domain.TriggerManual
}
