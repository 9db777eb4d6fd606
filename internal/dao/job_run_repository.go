package dao

import (
	"context"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// jobRunRepository 实现 domain.JobRunRepository 接口
type jobRunRepository struct {
	dao *Dao
}

// NewJobRunRepository 创建 JobRunRepository 实例
func NewJobRunRepository(dao *Dao) domain.JobRunRepository {
	return &jobRunRepository{dao: dao}
}

func (r *jobRunRepository) db(ctx context.Context) (*gorm.DB, error) {
	return r.dao.UseWithOnceFunc(ctx, migrate("JobRun"), "job_run#migrate")
}

// toDomain 将数据库模型转换为领域模型
func (r *jobRunRepository) toDomain(m *model.JobRun) *domain.JobRun {
	if m == nil {
		return nil
	}
	return &domain.JobRun{
		ID:             m.ID,
		RunID:          m.RunID,
		Task:           m.Task,
		Trigger:        domain.RunTrigger(m.Trigger),
		Status:         domain.RunStatus(m.Status),
		Error:          m.Error,
		Purge: domain.PurgeReport{
			Cutoff:       m.Cutoff,
			DryRun:       m.DryRun,
			Deleted:      m.Deleted,
			Retained:     m.Retained,
			Skipped:      m.Skipped,
			ParseErrors:  m.ParseErrors,
			DeleteErrors: m.DeleteErrors,
			Gone:         m.Gone,
		},
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
	}
}

// Create 保存执行记录
func (r *jobRunRepository) Create(ctx context.Context, run *domain.JobRun) (*domain.JobRun, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "migrate job_run")
	}
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	m := &model.JobRun{
		RunID:          run.RunID,
		Task:           run.Task,
		Trigger:        string(run.Trigger),
		Status:         string(run.Status),
		Error:          run.Error,
		Cutoff:         run.Purge.Cutoff,
		DryRun:         run.Purge.DryRun,
		Deleted:        run.Purge.Deleted,
		Retained:       run.Purge.Retained,
		Skipped:        run.Purge.Skipped,
		ParseErrors:    run.Purge.ParseErrors,
		DeleteErrors:   run.Purge.DeleteErrors,
		Gone:           run.Purge.Gone,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
	}
	if err := db.Create(m).Error; err != nil {
		return nil, errors.Wrapf(err, "insert job_run %s", run.RunID)
	}
	return r.toDomain(m), nil
}

// List 按开始时间倒序获取最近的执行记录，task 为空时不过滤
func (r *jobRunRepository) List(ctx context.Context, task string, limit int) ([]*domain.JobRun, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "migrate job_run")
	}
	if limit <= 0 {
		limit = 20
	}
	q := db.Model(&model.JobRun{})
	if task != "" {
		q = q.Where("task = ?", task)
	}
	var ms []*model.JobRun
	if err := q.Order("started_at DESC").Order("id DESC").Limit(limit).Find(&ms).Error; err != nil {
		return nil, err
	}
	results := make([]*domain.JobRun, 0, len(ms))
	for _, m := range ms {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// Last 获取任务最近一次执行记录，没有记录时返回 nil, nil
func (r *jobRunRepository) Last(ctx context.Context, task string) (*domain.JobRun, error) {
	list, err := r.List(ctx, task, 1)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// DeleteBefore 删除开始时间早于 before 的执行记录
func (r *jobRunRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	db, err := r.db(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "migrate job_run")
	}
	result := db.Where("started_at < ?", before).Delete(&model.JobRun{})
	return result.RowsAffected, result.Error
}
