// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/pkg/timex"
)

// PurgeReportDTO purge statistics of one run
// PurgeReportDTO 一次清理的统计
type PurgeReportDTO struct {
	Cutoff       string `json:"cutoff"`       // Cutoff date // 截止日期
	DryRun       bool   `json:"dryRun"`       // Dry run // 演练模式
	Deleted      int    `json:"deleted"`      // Deleted folders // 删除的目录数
	Retained     int    `json:"retained"`     // Retained folders // 保留的目录数
	Skipped      int    `json:"skipped"`      // Non folder children // 跳过的非目录子项
	ParseErrors  int    `json:"parseErrors"`  // Unparseable names // 无法解析的名称
	DeleteErrors int    `json:"deleteErrors"` // Failed deletions // 删除失败数
	Gone         int    `json:"gone"`         // Already removed // 已被删除
	RootMissing  bool   `json:"rootMissing"`  // Purge root missing // 根目录不存在
}

// JobRunDTO job run for API response
// JobRunDTO 执行记录 API 响应对象
type JobRunDTO struct {
	RunID      string         `json:"runId"`
	Task       string         `json:"task"`
	Trigger    string         `json:"trigger"`
	Status     string         `json:"status"`
	Error      string         `json:"error,omitempty"`
	Purge      PurgeReportDTO `json:"purge"`
	StartedAt  timex.Time     `json:"startedAt"`
	FinishedAt timex.Time     `json:"finishedAt"`
	DurationMs int64          `json:"durationMs"`
}

// NewJobRunDTO 转换执行记录
func NewJobRunDTO(run *domain.JobRun) *JobRunDTO {
	if run == nil {
		return nil
	}
	d := &JobRunDTO{
		RunID:      run.RunID,
		Task:       run.Task,
		Trigger:    string(run.Trigger),
		Status:     string(run.Status),
		Error:      run.Error,
		StartedAt:  timex.Time(run.StartedAt),
		FinishedAt: timex.Time(run.FinishedAt),
		DurationMs: run.Duration().Milliseconds(),
		Purge: PurgeReportDTO{
			DryRun:       run.Purge.DryRun,
			Deleted:      run.Purge.Deleted,
			Retained:     run.Purge.Retained,
			Skipped:      run.Purge.Skipped,
			ParseErrors:  run.Purge.ParseErrors,
			DeleteErrors: run.Purge.DeleteErrors,
			Gone:         run.Purge.Gone,
			RootMissing:  run.Purge.RootMissing,
		},
	}
	if !run.Purge.Cutoff.IsZero() {
		d.Purge.Cutoff = run.Purge.Cutoff.Format("2006-01-02")
	}
	return d
}

// NewJobRunDTOList 转换执行记录列表
func NewJobRunDTOList(runs []*domain.JobRun) []*JobRunDTO {
	out := make([]*JobRunDTO, 0, len(runs))
	for _, r := range runs {
		out = append(out, NewJobRunDTO(r))
	}
	return out
}

// JobRunListRequest history query
// JobRunListRequest 执行记录查询参数
type JobRunListRequest struct {
	Limit int `json:"limit" form:"limit" binding:"gte=0,lte=500"`
}
