package minio

import (
	"context"
	"strings"

	"github.com/AnushaPriya2003/anusha/pkg/storage/aws_s3"

	"github.com/pkg/errors"
)

const defaultRegion = "us-east-1"

type Config struct {
	BucketName      string `yaml:"bucket-name"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

// SDKEndpoint MinIO 使用 path-style 寻址，endpoint 未带协议时按 https 处理
func (c *Config) SDKEndpoint() aws_s3.Endpoint {
	region := c.Region
	if region == "" {
		region = defaultRegion
	}
	url := strings.TrimRight(c.Endpoint, "/")
	if url != "" && !strings.Contains(url, "://") {
		url = "https://" + url
	}
	return aws_s3.Endpoint{
		Region:          region,
		URL:             url,
		PathStyle:       true,
		AccessKeyID:     c.AccessKeyID,
		AccessKeySecret: c.AccessKeySecret,
	}
}

// NewClient 创建 MinIO 存储实例
func NewClient(conf *Config, opts ...aws_s3.Option) (*aws_s3.S3, error) {
	if conf.Endpoint == "" {
		return nil, errors.New("minio: endpoint is empty")
	}
	client, err := aws_s3.LoadClient(context.Background(), conf.SDKEndpoint())
	if err != nil {
		return nil, errors.Wrap(err, "minio")
	}

	opts = append([]aws_s3.Option{aws_s3.WithName("minio")}, opts...)
	return aws_s3.New(client, conf.BucketName, conf.CustomPath, opts...), nil
}
