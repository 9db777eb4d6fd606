// Package model 定义执行记录数据库表结构
package model

import (
	"fmt"

	"gorm.io/gorm"
)

// tables 迁移标识到模型的映射
var tables = map[string]any{
	"JobRun": &JobRun{},
}

// AutoMigrate 按迁移标识建表或补齐字段，未知标识返回错误
func AutoMigrate(db *gorm.DB, key string) error {
	m, ok := tables[key]
	if !ok {
		return fmt.Errorf("model %s is not registered for migration", key)
	}
	return db.AutoMigrate(m)
}
