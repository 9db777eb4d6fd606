package domain

import "time"

// RunStatus 定义任务执行结果
type RunStatus string

const (
	RunStatusSuccess  RunStatus = "success"
	RunStatusPartial  RunStatus = "partial"
	RunStatusFailed   RunStatus = "failed"
	RunStatusSkipped  RunStatus = "skipped"
	RunStatusDisabled RunStatus = "disabled"
)

// RunTrigger 定义任务触发方式
type RunTrigger string

const (
	TriggerSchedule RunTrigger = "schedule"
	TriggerManual   RunTrigger = "manual"
	TriggerCLI      RunTrigger = "cli"
	TriggerStartup  RunTrigger = "startup"
)

// PurgeReport 一次清理的统计结果
type PurgeReport struct {
	Cutoff       time.Time
	DryRun       bool
	Deleted      int
	Retained     int
	Skipped      int
	ParseErrors  int
	DeleteErrors int
	Gone         int
	// RootMissing 清理根目录不存在
	RootMissing bool
	// ListError 列出根目录失败
	ListError error
}

// Failed 是否存在失败项
func (r *PurgeReport) Failed() bool {
	return r.ListError != nil || r.ParseErrors > 0 || r.DeleteErrors > 0
}

// JobRun 任务执行记录领域模型
type JobRun struct {
	ID      int64
	RunID   string
	Task    string
	Trigger RunTrigger
	Status  RunStatus
	// Error 第一个失败原因
	Error      string
	Purge      PurgeReport
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration 执行耗时
func (j *JobRun) Duration() time.Duration {
	if j.FinishedAt.IsZero() {
		return 0
	}
	return j.FinishedAt.Sub(j.StartedAt)
}

// IsSuccess 判断执行是否完全成功
func (j *JobRun) IsSuccess() bool {
	return j.Status == RunStatusSuccess
}
