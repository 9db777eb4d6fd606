package dto

import "github.com/AnushaPriya2003/anusha/pkg/timex"

// VersionDTO version information for API response
// VersionDTO 版本信息 API 响应对象
type VersionDTO struct {
	Name      string `json:"name"`      // Application name // 应用名称
	Version   string `json:"version"`   // Current version // 当前版本
	GitTag    string `json:"gitTag"`    // Git tag // Git 标签
	BuildTime string `json:"buildTime"` // Build time // 构建时间
}

// TaskStatusDTO scheduled task state
// TaskStatusDTO 任务状态
type TaskStatusDTO struct {
	Name     string     `json:"name"`
	Schedule string     `json:"schedule"`
	Running  bool       `json:"running"`
	NextRun  timex.Time `json:"nextRun"`
	LastRun  *JobRunDTO `json:"lastRun,omitempty"`
}

// HealthDTO health check response
// HealthDTO 健康检查响应
type HealthDTO struct {
	Status   string           `json:"status"`   // "healthy" or "unhealthy" // 健康状态
	Version  string           `json:"version"`  // Service version // 服务版本号
	Uptime   float64          `json:"uptime"`   // Seconds since start // 运行时间（秒）
	Database string           `json:"database"` // "connected", "disabled" or "error" // 数据库状态
	Storage  string           `json:"storage"`  // Storage type // 存储类型
	Job      string           `json:"job"`      // "enabled", "disabled" or "absent" // 任务配置状态
	Tasks    []*TaskStatusDTO `json:"tasks"`
}

// TaskRunDTO manual trigger response
// TaskRunDTO 手动触发响应
type TaskRunDTO struct {
	Task    string `json:"task"`
	Trigger string `json:"trigger"`
}
