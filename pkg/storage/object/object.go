// Package object holds the types shared by every storage backend.
package object

import (
	"errors"
	"path"
	"strings"
	"time"
)

// ErrNotExist 路径不存在（已被删除或从未存在）
var ErrNotExist = errors.New("storage: object does not exist")

// Object 存储中的一个直接子项
type Object struct {
	// Name 最后一级名称
	Name string
	// Key 逻辑路径，以 "/" 开头
	Key string
	// IsDir 是否为目录（对象存储中为公共前缀）
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// Clean normalizes a logical path to "/a/b" form.
func Clean(logical string) string {
	return path.Clean("/" + strings.TrimSpace(logical))
}

// Child joins a logical directory and a child name.
func Child(dir, name string) string {
	return path.Join(Clean(dir), name)
}

// Base returns the last element of a slash separated key, ignoring a
// trailing slash.
func Base(key string) string {
	return path.Base(strings.TrimSuffix(key, "/"))
}
