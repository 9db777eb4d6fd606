// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// ResourceResolver 资源解析器，一次任务执行期间持有
type ResourceResolver interface {
	// Children 列出目录的直接子项，按存储的枚举顺序
	Children(ctx context.Context, path string) ([]FolderEntry, error)

	// Delete 递归删除条目
	Delete(ctx context.Context, entry FolderEntry) error

	// Close 释放解析器，之后的调用返回 ErrResolverClosed
	Close() error
}

// ResourceResolverFactory 创建资源解析器
type ResourceResolverFactory interface {
	// Open 打开一个新的解析器
	Open(ctx context.Context) (ResourceResolver, error)
}

// JobRunRepository 任务执行记录仓储接口
type JobRunRepository interface {
	// Create 保存执行记录
	Create(ctx context.Context, run *JobRun) (*JobRun, error)

	// List 按开始时间倒序获取最近的执行记录
	List(ctx context.Context, task string, limit int) ([]*JobRun, error)

	// Last 获取任务最近一次执行记录
	Last(ctx context.Context, task string) (*JobRun, error)

	// DeleteBefore 删除开始时间早于 before 的执行记录
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
