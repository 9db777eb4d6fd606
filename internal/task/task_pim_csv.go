package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/internal/service"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PimCsvTaskName 任务名称
const PimCsvTaskName = "emea-pim-csv"

var errNoGenerator = errors.New("csv generation service is not configured")

// PimCsvDeps PIM CSV 任务依赖
type PimCsvDeps struct {
	Resolvers domain.ResourceResolverFactory
	Generator service.CsvGenerationService
	Purger    service.PurgeService
	// History 可选
	History domain.JobRunRepository
	Metrics *metrics.Metrics
	Logger  *zap.Logger
	// Track 可选，登记一次执行，返回结束回调
	Track func() func()
}

// PimCsvTask 生成 EMEA PIM CSV 并清理过期导出目录
type PimCsvTask struct {
	config *app.JobConfig
	deps   PimCsvDeps
	logger *zap.Logger
	now    func() time.Time
}

// NewPimCsvTask 创建任务，cfg 为空表示未收到配置
// 任务持有 cfg 的副本，之后对 cfg 的修改不会生效
func NewPimCsvTask(cfg *app.JobConfig, deps PimCsvDeps) *PimCsvTask {
	zl := deps.Logger
	if zl == nil {
		zl = zap.NewNop()
	}
	return &PimCsvTask{
		config: cfg.Clone(),
		deps:   deps,
		logger: zl,
		now:    time.Now,
	}
}

func init() {
	RegisterWithApp(PimCsvTaskName, func(appContainer *app.App) (Task, error) {
		return NewPimCsvTask(appContainer.Config().Job, PimCsvDeps{
			Resolvers: appContainer.Resolvers,
			Generator: appContainer.CsvService,
			Purger:    appContainer.PurgeService,
			History:   appContainer.JobRunRepo,
			Metrics:   appContainer.Metrics,
			Logger:    appContainer.Logger(),
			Track:     appContainer.TrackOperation,
		}), nil
	})
}

// Name 返回任务名称
func (t *PimCsvTask) Name() string {
	return PimCsvTaskName
}

// Schedule 返回调度表达式，未配置时不调度
func (t *PimCsvTask) Schedule() string {
	if t.config == nil {
		return ""
	}
	return t.config.SchedulerExpression
}

// IsStartupRun 是否立即执行一次
func (t *PimCsvTask) IsStartupRun() bool {
	return t.config != nil && t.config.StartupRun
}

// Run 执行一次：生成 CSV，然后清理过期目录
func (t *PimCsvTask) Run(ctx context.Context) error {
	run := &domain.JobRun{
		RunID:     uuid.NewString(),
		Task:      t.Name(),
		Trigger:   TriggerFrom(ctx),
		StartedAt: t.now(),
	}
	log := t.logger.With(
		zap.String(logger.FieldTask, run.Task),
		zap.String(logger.FieldRunID, run.RunID),
		zap.String(logger.FieldTrigger, string(run.Trigger)),
	)

	if t.config == nil {
		log.Warn("job configuration absent, nothing to do")
		t.deps.Metrics.RecordRun(run.Task, string(domain.RunStatusSkipped), 0)
		return domain.ErrConfigurationAbsent
	}
	if t.config.Disabled {
		log.Info("job is disabled")
		t.deps.Metrics.RecordRun(run.Task, string(domain.RunStatusDisabled), 0)
		return domain.ErrDisabled
	}

	log.Debug("job is running")
	if t.deps.Track != nil {
		defer t.deps.Track()()
	}

	resolver, err := t.deps.Resolvers.Open(ctx)
	if err != nil {
		log.Error("open resource resolver failed", zap.Error(err))
		run.Status = domain.RunStatusFailed
		run.Error = err.Error()
		t.finish(ctx, run, log)
		return fmt.Errorf("open resource resolver: %w", err)
	}
	defer func() {
		if cerr := resolver.Close(); cerr != nil {
			log.Warn("release resource resolver failed", zap.Error(cerr))
		}
	}()

	genErr := t.generate(ctx, resolver, log)

	// 清理不受调用方取消的影响
	run.Purge = t.deps.Purger.Purge(context.WithoutCancel(ctx), resolver, t.config.PurgeRoot, t.config.NumberOfDaysPurge)

	run.Status = runStatus(genErr, &run.Purge)
	switch {
	case genErr != nil:
		run.Error = genErr.Error()
	case run.Purge.ListError != nil:
		run.Error = run.Purge.ListError.Error()
	case run.Purge.Failed():
		run.Error = fmt.Sprintf("purge: %d parse errors, %d delete errors", run.Purge.ParseErrors, run.Purge.DeleteErrors)
	}
	t.finish(ctx, run, log)

	if run.Status != domain.RunStatusSuccess {
		return fmt.Errorf("run %s finished with status %s: %s", run.RunID, run.Status, run.Error)
	}
	return nil
}

func (t *PimCsvTask) generate(ctx context.Context, resolver domain.ResourceResolver, log *zap.Logger) error {
	if t.deps.Generator == nil {
		log.Error("emea pim csv generation skipped", zap.Error(errNoGenerator))
		t.deps.Metrics.RecordGenerator(errNoGenerator)
		return errNoGenerator
	}
	mapper := t.config.AssetURLMapping
	if mapper == nil {
		mapper = domain.AssetURLMapping{}
	}
	err := t.deps.Generator.CreateEmeaPimCsv(ctx, resolver, t.config.LanguagesGenericListPath, t.config.DeniedPaths, mapper)
	t.deps.Metrics.RecordGenerator(err)
	if err != nil {
		log.Error("emea pim csv generation failed", zap.Error(err))
	}
	return err
}

// finish 记录指标和执行历史，记录失败只写日志
func (t *PimCsvTask) finish(ctx context.Context, run *domain.JobRun, log *zap.Logger) {
	run.FinishedAt = t.now()
	t.deps.Metrics.RecordRun(run.Task, string(run.Status), run.Duration())

	if t.deps.History != nil {
		if _, err := t.deps.History.Create(context.WithoutCancel(ctx), run); err != nil {
			log.Warn("record job run failed", zap.Error(err))
		}
	}

	log.Info("job completed",
		zap.String("status", string(run.Status)),
		zap.Duration(logger.FieldDuration, run.Duration()))
}

// runStatus 生成和清理都成功为 success，都失败为 failed，否则为 partial
func runStatus(genErr error, report *domain.PurgeReport) domain.RunStatus {
	purgeFailed := report.Failed()
	switch {
	case genErr == nil && !purgeFailed:
		return domain.RunStatusSuccess
	case genErr != nil && purgeFailed:
		return domain.RunStatusFailed
	default:
		return domain.RunStatusPartial
	}
}
