package model

import "time"

const TableNameJobRun = "job_run"

// JobRun mapped from table <job_run>
type JobRun struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	RunID          string    `gorm:"column:run_id;size:36;uniqueIndex" json:"runId" form:"runId"`
	Task           string    `gorm:"column:task;size:64;index:idx_job_run_task_started,priority:1" json:"task" form:"task"`
	Trigger        string    `gorm:"column:trigger;size:16" json:"trigger" form:"trigger"`
	Status         string    `gorm:"column:status;size:16" json:"status" form:"status"`
	Error          string    `gorm:"column:error;type:text" json:"error" form:"error"`
	Cutoff         time.Time `gorm:"column:cutoff" json:"cutoff" form:"cutoff"`
	DryRun         bool      `gorm:"column:dry_run" json:"dryRun" form:"dryRun"`
	Deleted        int       `gorm:"column:deleted" json:"deleted" form:"deleted"`
	Retained       int       `gorm:"column:retained" json:"retained" form:"retained"`
	Skipped        int       `gorm:"column:skipped" json:"skipped" form:"skipped"`
	ParseErrors    int       `gorm:"column:parse_errors" json:"parseErrors" form:"parseErrors"`
	DeleteErrors   int       `gorm:"column:delete_errors" json:"deleteErrors" form:"deleteErrors"`
	Gone           int       `gorm:"column:gone" json:"gone" form:"gone"`
	StartedAt      time.Time `gorm:"column:started_at;index:idx_job_run_task_started,priority:2" json:"startedAt" form:"startedAt"`
	FinishedAt     time.Time `gorm:"column:finished_at" json:"finishedAt" form:"finishedAt"`
}

// TableName JobRun's table name
func (*JobRun) TableName() string {
	return TableNameJobRun
}
