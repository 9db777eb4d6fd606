package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTask 任务名称字段
	FieldTask = "task"

	// FieldRunID 单次执行 ID 字段
	FieldRunID = "runId"

	// FieldTrigger 触发来源字段 (cron / startup / manual / cli)
	FieldTrigger = "trigger"

	// FieldPath 资源路径字段
	FieldPath = "path"

	// FieldName 资源名称字段
	FieldName = "name"

	// FieldResourceType 资源类型字段
	FieldResourceType = "resourceType"

	// FieldCutoff 截止日期字段
	FieldCutoff = "cutoff"

	// FieldPurgeDays 保留天数字段
	FieldPurgeDays = "purgeDays"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldStorage 存储类型字段
	FieldStorage = "storage"

	// FieldBucket 存储桶名称字段
	FieldBucket = "bucket"

	// FieldEndpoint 远程端点字段
	FieldEndpoint = "endpoint"

	// FieldSchedule 调度表达式字段
	FieldSchedule = "schedule"

	// FieldError 错误信息字段
	FieldError = "error"
)
