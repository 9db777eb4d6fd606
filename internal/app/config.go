// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/dao"
	"github.com/AnushaPriya2003/anusha/internal/domain"
	"github.com/AnushaPriya2003/anusha/internal/service"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/storage"
	"github.com/AnushaPriya2003/anusha/pkg/util"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPurgeRoot 导出目录的父目录
	DefaultPurgeRoot = "/content/dam/emea/pim"
	// DefaultLanguagesListPath 语言列表路径
	DefaultLanguagesListPath = "/etc/acs-commons/lists/emea/languages-generic"
	// DefaultSchedulerExpression 每天 09:00
	DefaultSchedulerExpression = "0 0 9 1/1 * ? *"
	// DefaultAssetURLMapping 资源 URL 映射默认值，格式 "src*dst|src*dst"
	DefaultAssetURLMapping = "/content/dam/emea*https://assets.example.com/emea"
)

// AppConfig 应用配置
type AppConfig struct {
	File      string                  `yaml:"-"` // 配置文件路径，不序列化
	Log       LogConfig               `yaml:"log"`
	Server    ServerConfig            `yaml:"server"`
	Database  dao.Config              `yaml:"database"`
	Storage   storage.Config          `yaml:"storage"`
	Generator service.GeneratorConfig `yaml:"generator"`
	// Job 为空表示未收到任务配置
	Job *JobConfig `yaml:"job"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info" validate:"oneof=debug info warn error dpanic panic fatal"`
	// File 日志文件路径，为空时只输出到控制台
	File string `yaml:"file" default:"storage/logs/job.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release" validate:"oneof=debug release test"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics、健康检查、手动触发），为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60" validate:"gte=0"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60" validate:"gte=0"`
	// ShutdownTimeout 优雅关闭超时，支持格式：30s、5m
	ShutdownTimeout string `yaml:"shutdown-timeout" default:"30s"`
}

// JobConfig PIM CSV 导出任务配置
type JobConfig struct {
	// Disabled 未显式配置时为 true
	Disabled bool `yaml:"disabled" json:"disabled"`
	// SchedulerExpression Quartz 或标准 cron 表达式
	SchedulerExpression string `yaml:"scheduler-expression" json:"schedulerExpression" default:"0 0 9 1/1 * ? *" validate:"required"`
	// LanguagesGenericListPath EMEA 语言列表路径
	LanguagesGenericListPath string `yaml:"languages-generic-list-path" json:"languagesGenericListPath" default:"/etc/acs-commons/lists/emea/languages-generic" validate:"required"`
	// NumberOfDaysPurge 导出目录保留天数
	NumberOfDaysPurge int `yaml:"number-of-days-purge" json:"numberOfDaysPurge" default:"30" validate:"gte=0"`
	// AssetURLMapping 资源 URL 映射，支持列表或 "src*dst|src*dst"
	AssetURLMapping domain.AssetURLMapping `yaml:"asset-url-mapping" json:"assetUrlMapping"`
	// DeniedPaths 生成 CSV 时忽略的路径
	DeniedPaths []string `yaml:"denied-paths" json:"deniedPaths" default:"[\"/content/dam/emea/pim\"]"`
	// PurgeRoot 清理根目录
	PurgeRoot string `yaml:"purge-root" json:"purgeRoot" default:"/content/dam/emea/pim" validate:"required,startswith=/"`
	// TimeZone 计算截止日期使用的时区，为空使用本地时区
	TimeZone string `yaml:"time-zone" json:"timeZone"`
	// StartupRun 启动时立即执行一次
	StartupRun bool `yaml:"startup-run" json:"startupRun"`
}

// UnmarshalYAML 在解析前填充默认值，未显式配置 disabled 时任务保持禁用
// 未配置 asset-url-mapping 时使用 DefaultAssetURLMapping
func (j *JobConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain JobConfig
	p := (*plain)(j)
	if err := defaults.Set(p); err != nil {
		return err
	}
	p.Disabled = true
	mapping, err := domain.ParseAssetURLMapping(DefaultAssetURLMapping)
	if err != nil {
		return err
	}
	p.AssetURLMapping = mapping
	return node.Decode(p)
}

// Location 解析任务时区
func (j *JobConfig) Location() (*time.Location, error) {
	return util.LoadLocation(j.TimeZone)
}

// Clone 返回任务配置的深拷贝，作为一次运行期间不可变的快照
func (j *JobConfig) Clone() *JobConfig {
	if j == nil {
		return nil
	}
	c := new(JobConfig)
	if err := copier.CopyWithOption(c, j, copier.Option{DeepCopy: true}); err != nil {
		cp := *j
		return &cp
	}
	return c
}

// LoggerConfig 转换为日志配置
func (c LogConfig) LoggerConfig() logger.Config {
	return logger.Config{Level: c.Level, File: c.File, Production: c.Production}
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	c, err := ParseConfig(file)
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath
	return c, realpath, nil
}

// ParseConfig 解析并校验 YAML 配置
func ParseConfig(data []byte) (*AppConfig, error) {
	c := new(AppConfig)

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充
	// 任务配置已在 UnmarshalYAML 中填充默认值，显式的 0 需要保留
	job := c.Job
	c.Job = nil
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "re-set default config failed")
	}
	c.Job = job

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var validate = validator.New()

// Validate 校验配置
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	if _, err := util.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return errors.Wrapf(err, "invalid server.shutdown-timeout %q", c.Server.ShutdownTimeout)
	}
	if err := validateStorage(&c.Storage); err != nil {
		return err
	}

	if c.Job == nil {
		return nil
	}
	if _, err := util.ParseCron(c.Job.SchedulerExpression); err != nil {
		return errors.Wrap(err, "invalid job.scheduler-expression")
	}
	if _, err := c.Job.Location(); err != nil {
		return errors.Wrapf(err, "invalid job.time-zone %q", c.Job.TimeZone)
	}
	if !c.Job.Disabled && c.Generator.Endpoint == "" {
		return errors.New("invalid config: generator.endpoint is required when the job is enabled")
	}
	if c.Generator.Timeout != "" {
		if _, err := util.ParseDuration(c.Generator.Timeout); err != nil {
			return errors.Wrapf(err, "invalid generator.timeout %q", c.Generator.Timeout)
		}
	}
	return nil
}

func validateStorage(s *storage.Config) error {
	required := map[string]string{}
	switch s.Type {
	case storage.S3:
		required = map[string]string{"bucket-name": s.BucketName, "region": s.Region}
	case storage.MinIO:
		required = map[string]string{"bucket-name": s.BucketName, "endpoint": s.Endpoint}
	case storage.R2:
		required = map[string]string{"bucket-name": s.BucketName, "account-id": s.AccountID}
	case storage.OSS:
		required = map[string]string{"bucket-name": s.BucketName, "endpoint": s.Endpoint}
	case storage.WebDAV:
		required = map[string]string{"endpoint": s.Endpoint}
	case storage.LOCAL:
		required = map[string]string{"save-path": s.SavePath}
	}
	for _, key := range []string{"bucket-name", "region", "endpoint", "account-id", "save-path"} {
		if v, ok := required[key]; ok && v == "" {
			return fmt.Errorf("invalid config: storage.%s is required for storage type %s", key, s.Type)
		}
	}
	return nil
}

// ShutdownTimeout 获取优雅关闭超时时间
func (c *AppConfig) ShutdownTimeout() time.Duration {
	if d, err := util.ParseDuration(c.Server.ShutdownTimeout); err == nil && d > 0 {
		return d
	}
	return DefaultShutdownTimeout
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}
