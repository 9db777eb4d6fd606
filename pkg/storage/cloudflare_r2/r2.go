package cloudflare_r2

import (
	"context"
	"fmt"

	"github.com/AnushaPriya2003/anusha/pkg/storage/aws_s3"

	"github.com/pkg/errors"
)

type Config struct {
	AccountID       string `yaml:"account-id"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	// Jurisdiction eu 或 fedramp，为空时使用默认地址
	Jurisdiction string `yaml:"jurisdiction"`
}

// SDKEndpoint R2 的 region 固定为 auto，地址由账号和管辖区决定
func (c *Config) SDKEndpoint() aws_s3.Endpoint {
	host := c.AccountID
	if c.Jurisdiction != "" {
		host += "." + c.Jurisdiction
	}
	return aws_s3.Endpoint{
		Region:          "auto",
		URL:             fmt.Sprintf("https://%s.r2.cloudflarestorage.com", host),
		AccessKeyID:     c.AccessKeyID,
		AccessKeySecret: c.AccessKeySecret,
	}
}

// NewClient 创建 R2 存储实例
func NewClient(conf *Config, opts ...aws_s3.Option) (*aws_s3.S3, error) {
	if conf.AccountID == "" {
		return nil, errors.New("cloudflare_r2: account id is empty")
	}
	client, err := aws_s3.LoadClient(context.Background(), conf.SDKEndpoint())
	if err != nil {
		return nil, errors.Wrap(err, "cloudflare_r2")
	}

	opts = append([]aws_s3.Option{aws_s3.WithName("cloudflare_r2")}, opts...)
	return aws_s3.New(client, conf.BucketName, conf.CustomPath, opts...), nil
}
