package webdav

import (
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// Config 结构体用于存储 WebDAV 连接信息。
type Config struct {
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

// WebDAV 结构体表示 WebDAV 客户端。
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

// NewClient 创建一个新的 WebDAV 客户端实例。
func NewClient(conf *Config) (*WebDAV, error) {
	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	if err := c.Connect(); err != nil {
		return nil, errors.Wrap(err, "webdav")
	}
	return &WebDAV{
		Client: c,
		Config: conf,
	}, nil
}

// remotePath 逻辑路径 -> 服务器路径 (Path + CustomPath + key)
func (w *WebDAV) remotePath(key string) string {
	return path.Join("/", strings.Trim(w.Config.Path, "/"), strings.Trim(w.Config.CustomPath, "/"), path.Clean("/"+key))
}
