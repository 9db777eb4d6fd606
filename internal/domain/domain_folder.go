package domain

import (
	"strings"
	"time"
)

// 资源类型
const (
	// ResourceTypeFolder 目录（对象存储中的公共前缀）
	ResourceTypeFolder = "sling:Folder"
	// ResourceTypeAsset 普通文件
	ResourceTypeAsset = "dam:Asset"
)

// FolderEntry PurgeRoot 下的一个直接子项
type FolderEntry struct {
	// Name 期望为 YYYY-MM-DD
	Name string
	// ResourceType 资源类型分类
	ResourceType string
	// Path 逻辑路径，用于日志和删除
	Path    string
	ModTime time.Time
}

// IsFolder 资源类型是否包含 "folder"（不区分大小写）
func (e *FolderEntry) IsFolder() bool {
	return strings.Contains(strings.ToLower(e.ResourceType), "folder")
}
