package dao

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/metrics"
	"github.com/AnushaPriya2003/anusha/pkg/storage"
	"github.com/AnushaPriya2003/anusha/pkg/storage/object"

	"github.com/juju/ratelimit"
	"go.uber.org/zap"
)

// ResolverFactory 在配置的存储之上打开资源解析器
type ResolverFactory struct {
	store   storage.Storager
	bucket  *ratelimit.Bucket
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// ResolverOption 解析器工厂选项
type ResolverOption func(*ResolverFactory)

// WithDeleteRate 限制每秒删除次数，rate <= 0 不限制
func WithDeleteRate(rate float64) ResolverOption {
	return func(f *ResolverFactory) {
		if rate <= 0 {
			f.bucket = nil
			return
		}
		capacity := int64(math.Ceil(rate))
		f.bucket = ratelimit.NewBucketWithRate(rate, capacity)
	}
}

// WithResolverMetrics 记录打开的解析器数量
func WithResolverMetrics(m *metrics.Metrics) ResolverOption {
	return func(f *ResolverFactory) {
		f.metrics = m
	}
}

// NewResolverFactory 创建 ResolverFactory 实例
func NewResolverFactory(store storage.Storager, zl *zap.Logger, opts ...ResolverOption) *ResolverFactory {
	if zl == nil {
		zl = zap.NewNop()
	}
	f := &ResolverFactory{store: store, logger: zl}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Open 打开一个新的解析器，调用方负责 Close
func (f *ResolverFactory) Open(ctx context.Context) (domain.ResourceResolver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.metrics.ResolverOpened()
	return &resourceResolver{factory: f}, nil
}

type resourceResolver struct {
	factory *ResolverFactory
	closed  atomic.Bool
}

// Children 列出直接子项，目录映射为 sling:Folder，文件映射为 dam:Asset
func (r *resourceResolver) Children(ctx context.Context, path string) ([]domain.FolderEntry, error) {
	if r.closed.Load() {
		return nil, domain.ErrResolverClosed
	}
	objects, err := r.factory.store.List(ctx, object.Clean(path))
	if err != nil {
		return nil, err
	}
	entries := make([]domain.FolderEntry, 0, len(objects))
	for _, o := range objects {
		entry := domain.FolderEntry{
			Name:         o.Name,
			Path:         o.Key,
			ResourceType: domain.ResourceTypeAsset,
			ModTime:      o.ModTime,
		}
		if entry.Path == "" {
			entry.Path = object.Child(path, o.Name)
		}
		if o.IsDir {
			entry.ResourceType = domain.ResourceTypeFolder
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Delete 递归删除条目，受删除速率限制
func (r *resourceResolver) Delete(ctx context.Context, entry domain.FolderEntry) error {
	if r.closed.Load() {
		return domain.ErrResolverClosed
	}
	if err := r.factory.throttle(ctx); err != nil {
		return err
	}
	return r.factory.store.Delete(ctx, entry.Path)
}

// Close 释放解析器，重复调用无副作用
func (r *resourceResolver) Close() error {
	if r.closed.CompareAndSwap(false, true) {
		r.factory.metrics.ResolverClosed()
		r.factory.logger.Debug("resource resolver closed")
	}
	return nil
}

func (f *ResolverFactory) throttle(ctx context.Context) error {
	if f.bucket == nil {
		return nil
	}
	wait := f.bucket.Take(1)
	if wait <= 0 {
		return nil
	}
	f.logger.Debug("delete throttled", zap.Duration(logger.FieldDuration, wait))
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
