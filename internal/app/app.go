// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/dao"
	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/internal/service"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/metrics"
	"github.com/AnushaPriya2003/anusha/pkg/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 指标
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	// 存储和资源解析
	Storage   storage.Storager
	Resolvers domain.ResourceResolverFactory

	// Repository 层
	JobRunRepo domain.JobRunRepository

	// Service 层
	PurgeService service.PurgeService
	CsvService   service.CsvGenerationService

	// StartTime 容器创建时间
	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// Option App 构建选项
type Option func(*App)

// WithStorage 使用指定的存储（测试或命令行覆盖）
func WithStorage(s storage.Storager) Option {
	return func(a *App) {
		a.Storage = s
	}
}

// WithCsvService 使用指定的 CSV 生成服务
func WithCsvService(s service.CsvGenerationService) Option {
	return func(a *App) {
		a.CsvService = s
	}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 执行记录数据库连接（可选，为空时不记录执行历史）
func NewApp(cfg *AppConfig, zl *zap.Logger, db *gorm.DB, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if zl == nil {
		return nil, fmt.Errorf("logger is required")
	}

	a := &App{
		config:     cfg,
		logger:     zl,
		DB:         db,
		Registry:   prometheus.NewRegistry(),
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.New(a.Registry)

	// 初始化存储
	if a.Storage == nil {
		store, err := storage.NewClient(&cfg.Storage, zl)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client %s: %w", cfg.Storage.Type, err)
		}
		a.Storage = store
	}
	a.Resolvers = dao.NewResolverFactory(a.Storage, zl,
		dao.WithDeleteRate(cfg.Storage.DeleteRate),
		dao.WithResolverMetrics(a.Metrics),
	)

	// 初始化 Repository 层
	if db != nil {
		a.Dao = dao.New(db, zl)
		a.JobRunRepo = dao.NewJobRunRepository(a.Dao)
	}

	// 初始化 Service 层
	loc := time.Local
	if cfg.Job != nil {
		l, err := cfg.Job.Location()
		if err != nil {
			return nil, err
		}
		loc = l
	}
	a.PurgeService = a.NewPurgeService(false)

	if a.CsvService == nil && cfg.Generator.Endpoint != "" {
		svc, err := service.NewRemoteCsvService(cfg.Generator, &http.Client{}, zl)
		if err != nil {
			return nil, err
		}
		a.CsvService = svc
	}

	zl.Info("App container initialized successfully",
		zap.String(logger.FieldStorage, cfg.Storage.Type),
		zap.String("location", loc.String()),
		zap.Bool("history", a.JobRunRepo != nil),
		zap.Bool("jobConfigured", cfg.Job != nil))

	return a, nil
}

// NewPurgeService 创建清理服务，dryRun 为 true 时只记录不删除
func (a *App) NewPurgeService(dryRun bool) service.PurgeService {
	loc := time.Local
	if a.config.Job != nil {
		if l, err := a.config.Job.Location(); err == nil {
			loc = l
		}
	}
	return service.NewPurgeService(a.logger,
		service.WithLocation(loc),
		service.WithDryRun(dryRun),
		service.WithPurgeMetrics(a.Metrics),
	)
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.Dao != nil {
		if err := a.Dao.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 等待后台操作完成后关闭数据库
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// TrackOperation 跟踪一次任务执行，Shutdown 会等待其完成
// 返回一个函数，在执行结束时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
