package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 的父目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// ObjectKey turns a logical repository path ("/content/dam/emea/pim") into
// a bucket key relative to prefix ("exports/content/dam/emea/pim").
// ObjectKey 将逻辑路径转换为带前缀的对象键
func ObjectKey(prefix, logical string) string {
	logical = strings.TrimPrefix(path.Clean("/"+logical), "/")
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return logical
	}
	if logical == "" {
		return prefix
	}
	return prefix + "/" + logical
}

// DirKey returns key with exactly one trailing slash, or "" for the bucket root.
// DirKey 返回带单个 "/" 结尾的目录键，根目录返回空字符串
func DirKey(key string) string {
	key = strings.Trim(key, "/")
	if key == "" {
		return ""
	}
	return key + "/"
}
