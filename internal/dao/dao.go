// Package dao 实现数据访问层
package dao

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/model"
	"github.com/AnushaPriya2003/anusha/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Config 执行记录数据库配置
type Config struct {
	// Path sqlite 文件路径
	Path         string `yaml:"path" default:"storage/database/job.db" validate:"required"`
	TablePrefix  string `yaml:"table-prefix"`
	MaxIdleConns int    `yaml:"max-idle-conns" default:"2" validate:"gte=0"`
	MaxOpenConns int    `yaml:"max-open-conns" default:"1" validate:"gte=0"`
	// Debug 打印 SQL
	Debug bool `yaml:"debug"`
	// HistoryRetention 执行记录保留时间，支持格式：90d、720h，0 或空表示不清理
	HistoryRetention string `yaml:"history-retention" default:"90d"`
}

type Dao struct {
	Db     *gorm.DB
	logger *zap.Logger

	onceKeys sync.Map
}

// New 创建 Dao 实例
func New(db *gorm.DB, zl *zap.Logger) *Dao {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &Dao{Db: db, logger: zl}
}

func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// UseWithOnceFunc 返回带上下文的连接，首次使用某个 key 时执行 f（通常是建表）
func (d *Dao) UseWithOnceFunc(ctx context.Context, f func(g *gorm.DB) error, key string) (*gorm.DB, error) {
	once, _ := d.onceKeys.LoadOrStore(key, &onceErr{})
	oe := once.(*onceErr)
	oe.once.Do(func() {
		oe.err = f(d.Db)
	})
	if oe.err != nil {
		return nil, oe.err
	}
	return d.Db.WithContext(ctx), nil
}

type onceErr struct {
	once sync.Once
	err  error
}

// Close 关闭底层连接
func (d *Dao) Close() error {
	sqlDB, err := d.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewDBEngine 打开 sqlite 数据库
func NewDBEngine(c Config) (*gorm.DB, error) {
	if c.Path == "" {
		return nil, errors.New("database path is empty")
	}
	if c.Path != ":memory:" && !fileurl.IsExist(c.Path) {
		if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
			return nil, errors.Wrapf(err, "create database dir for %s", c.Path)
		}
	}

	db, err := gorm.Open(sqlite.Open(c.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀
			SingularTable: true,          // 使用单数表名
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", c.Path)
	}
	if c.Debug {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	return db, nil
}

func migrate(key string) func(g *gorm.DB) error {
	return func(g *gorm.DB) error {
		return model.AutoMigrate(g, key)
	}
}
