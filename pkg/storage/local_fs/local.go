package local_fs

import (
	"path/filepath"
	"strings"

	"github.com/AnushaPriya2003/anusha/pkg/storage/object"
)

type Config struct {
	SavePath   string `yaml:"save-path" default:"storage/repository"`
	CustomPath string `yaml:"custom-path"`
}

// LocalFS maps logical repository paths onto a directory tree under SavePath.
type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf == nil {
		conf = &Config{}
	}
	if conf.SavePath == "" {
		conf.SavePath = "storage/repository"
	}
	return &LocalFS{Config: conf}, nil
}

// realPath 将逻辑路径转换为磁盘路径，逻辑路径无法逃逸 SavePath
func (p *LocalFS) realPath(key string) string {
	rel := strings.TrimPrefix(object.Clean(key), "/")
	parts := []string{p.Config.SavePath}
	if p.Config.CustomPath != "" {
		parts = append(parts, filepath.FromSlash(strings.Trim(p.Config.CustomPath, "/")))
	}
	parts = append(parts, filepath.FromSlash(rel))
	return filepath.Join(parts...)
}
