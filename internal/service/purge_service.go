package service

import (
	"context"
	"errors"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/metrics"
	"github.com/AnushaPriya2003/anusha/pkg/storage"
	"github.com/AnushaPriya2003/anusha/pkg/util"

	"go.uber.org/zap"
)

// PurgeService 过期导出目录清理服务接口
type PurgeService interface {
	// Purge 删除 root 下名称日期早于 today - purgeDays 的目录
	// 单个条目的失败只记录日志和计数，不会中断其他条目，也不会返回错误
	Purge(ctx context.Context, resolver domain.ResourceResolver, root string, purgeDays int) domain.PurgeReport
}

type retentionPurger struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	loc     *time.Location
	dryRun  bool
}

// PurgeOption 清理服务选项
type PurgeOption func(*retentionPurger)

// WithClock 替换当前时间来源
func WithClock(now func() time.Time) PurgeOption {
	return func(p *retentionPurger) {
		p.now = now
	}
}

// WithLocation 截止日期和目录日期使用的时区
func WithLocation(loc *time.Location) PurgeOption {
	return func(p *retentionPurger) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithDryRun 只记录将被删除的目录，不实际删除
func WithDryRun(dryRun bool) PurgeOption {
	return func(p *retentionPurger) {
		p.dryRun = dryRun
	}
}

// WithPurgeMetrics 记录清理结果指标
func WithPurgeMetrics(m *metrics.Metrics) PurgeOption {
	return func(p *retentionPurger) {
		p.metrics = m
	}
}

func NewPurgeService(zl *zap.Logger, opts ...PurgeOption) PurgeService {
	if zl == nil {
		zl = zap.NewNop()
	}
	p := &retentionPurger{
		logger: zl,
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Cutoff 计算截止日期：今天0点减去 purgeDays 天
func (p *retentionPurger) Cutoff(purgeDays int) time.Time {
	return util.DaysBefore(p.now().In(p.loc), purgeDays)
}

func (p *retentionPurger) Purge(ctx context.Context, resolver domain.ResourceResolver, root string, purgeDays int) domain.PurgeReport {
	report := domain.PurgeReport{DryRun: p.dryRun}

	log := p.logger.With(zap.String(logger.FieldPath, root), zap.Int(logger.FieldPurgeDays, purgeDays))
	if purgeDays < 0 {
		log.Warn("negative purge days, nothing purged")
		return report
	}

	report.Cutoff = p.Cutoff(purgeDays)
	log = log.With(zap.String(logger.FieldCutoff, report.Cutoff.Format(util.DateLayout)))

	entries, err := resolver.Children(ctx, root)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			report.RootMissing = true
			log.Info("purge root does not exist, nothing to purge")
			return report
		}
		report.ListError = err
		log.Error("list purge root failed", zap.Error(err))
		return report
	}

	for _, entry := range entries {
		p.purgeEntry(ctx, resolver, entry, report.Cutoff, &report, log)
	}

	p.record(&report)
	log.Info("purge finished",
		zap.Int("deleted", report.Deleted),
		zap.Int("retained", report.Retained),
		zap.Int("skipped", report.Skipped),
		zap.Int("parseErrors", report.ParseErrors),
		zap.Int("deleteErrors", report.DeleteErrors),
		zap.Int("gone", report.Gone),
		zap.Bool("dryRun", report.DryRun),
	)
	return report
}

func (p *retentionPurger) purgeEntry(ctx context.Context, resolver domain.ResourceResolver, entry domain.FolderEntry, cutoff time.Time, report *domain.PurgeReport, log *zap.Logger) {
	log = log.With(
		zap.String(logger.FieldName, entry.Name),
		zap.String(logger.FieldResourceType, entry.ResourceType),
	)

	// 非目录条目不解析名称
	if !entry.IsFolder() {
		report.Skipped++
		log.Debug("skip non-folder entry")
		return
	}

	date, err := util.ParseDate(entry.Name, p.loc)
	if err != nil {
		report.ParseErrors++
		perr := &domain.DateParseError{Path: entry.Path, Name: entry.Name, Err: err}
		log.Warn("folder name is not a date", zap.Error(perr))
		return
	}

	if !date.Before(cutoff) {
		report.Retained++
		return
	}

	if p.dryRun {
		report.Deleted++
		log.Info("would delete expired folder", zap.String(logger.FieldPath, entry.Path))
		return
	}

	if err := resolver.Delete(ctx, entry); err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			report.Gone++
			log.Info("expired folder already gone", zap.String(logger.FieldPath, entry.Path))
			return
		}
		report.DeleteErrors++
		derr := &domain.StoreDeletionError{Path: entry.Path, Err: err}
		log.Error("delete expired folder failed", zap.String(logger.FieldPath, entry.Path), zap.Error(derr))
		return
	}
	report.Deleted++
	log.Info("deleted expired folder", zap.String(logger.FieldPath, entry.Path))
}

func (p *retentionPurger) record(report *domain.PurgeReport) {
	deleted := metrics.OutcomeDeleted
	if report.DryRun {
		deleted = metrics.OutcomeWouldDelete
	}
	p.metrics.RecordPurge(deleted, report.Deleted)
	p.metrics.RecordPurge(metrics.OutcomeRetained, report.Retained)
	p.metrics.RecordPurge(metrics.OutcomeSkipped, report.Skipped)
	p.metrics.RecordPurge(metrics.OutcomeParseError, report.ParseErrors)
	p.metrics.RecordPurge(metrics.OutcomeDeleteError, report.DeleteErrors)
	p.metrics.RecordPurge(metrics.OutcomeGone, report.Gone)
}
