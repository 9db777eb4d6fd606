package aliyun_oss

import (
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

const (
	connectTimeoutSec   = 10
	readWriteTimeoutSec = 120
	// maxKeys 单次 ListObjects / DeleteObjects 的数量上限
	maxKeys = 1000
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

// OSS 阿里云 OSS 上的导出仓库
type OSS struct {
	Bucket *oss.Bucket
	Config *Config
}

// NewClient 创建 OSS 存储实例，bucket 在创建时解析
func NewClient(conf *Config) (*OSS, error) {
	if conf.BucketName == "" {
		return nil, errors.New("aliyun_oss: bucket name is empty")
	}
	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret,
		oss.Timeout(connectTimeoutSec, readWriteTimeoutSec))
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	bucket, err := client.Bucket(conf.BucketName)
	if err != nil {
		return nil, errors.Wrapf(err, "aliyun_oss: bucket %s", conf.BucketName)
	}
	return &OSS{Bucket: bucket, Config: conf}, nil
}
