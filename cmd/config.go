package cmd

import (
	"os"

	internalApp "github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/internal/dao"
	"github.com/AnushaPriya2003/anusha/pkg/fileurl"
	"github.com/AnushaPriya2003/anusha/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// configCandidates 未指定配置文件时按顺序查找
var configCandidates = []string{
	"config/config-dev.yaml",
	"config.yaml",
	"config/config.yaml",
}

// resolveConfig 返回要使用的配置文件，找不到时 create 为 true 则写入默认配置
func resolveConfig(path string, create bool) (string, error) {
	if path != "" {
		return path, nil
	}
	for _, c := range configCandidates {
		if fileurl.IsExist(c) {
			return c, nil
		}
	}
	if !create {
		return "", errors.New("config file not found, use -c to specify one")
	}

	path = "config/config.yaml"
	bootstrapLogger.Warn("config file not found, creating default config")
	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "config file auto create error")
	}
	if err := os.WriteFile(path, []byte(configDefault), 0644); err != nil {
		return "", errors.Wrap(err, "config file auto create writing error")
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", path))
	return path, nil
}

// appOptions 一次性命令的初始化选项
type appOptions struct {
	config string
	// history 打开执行记录数据库
	history bool
	// console 只输出到控制台
	console bool
}

// loadApp 加载配置并创建 App Container，返回的 closer 关闭数据库
func loadApp(o appOptions) (*internalApp.App, func(), error) {
	path, err := resolveConfig(o.config, false)
	if err != nil {
		return nil, nil, err
	}
	cfg, _, err := internalApp.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}

	lc := cfg.Log.LoggerConfig()
	if o.console {
		lc.File = ""
	}
	lg, err := logger.NewLogger(lc)
	if err != nil {
		return nil, nil, err
	}

	var db *gorm.DB
	if o.history {
		db, err = dao.NewDBEngine(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
	}

	a, err := internalApp.NewApp(cfg, lg, db)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := a.Close(); err != nil {
			lg.Warn("close app failed", zap.Error(err))
		}
		_ = lg.Sync()
	}
	return a, closer, nil
}
