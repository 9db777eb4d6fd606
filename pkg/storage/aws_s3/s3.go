package aws_s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

// s3API 是本包用到的 S3 客户端方法子集，便于测试替换
type s3API interface {
	s3.ListObjectsV2APIClient
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 implements the repository surface on an S3 compatible bucket.
// MinIO and Cloudflare R2 reuse it with their own endpoints.
type S3 struct {
	S3Client   s3API
	Bucket     string
	CustomPath string
	name       string
	logger     *zap.Logger
}

// Option 配置选项函数类型
type Option func(*S3)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(s *S3) {
		s.logger = logger
	}
}

// WithName sets the backend name used in error messages
// WithName 设置错误信息中使用的后端名称
func WithName(name string) Option {
	return func(s *S3) {
		s.name = name
	}
}

// New wraps an existing client
// New 使用已有的客户端创建实例
func New(client s3API, bucket, customPath string, opts ...Option) *S3 {
	s := &S3{
		S3Client:   client,
		Bucket:     bucket,
		CustomPath: customPath,
		name:       "aws_s3",
		logger:     zap.NewNop(), // 默认空日志器
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Endpoint SDK 客户端连接参数
type Endpoint struct {
	Region          string
	URL             string // 为空时使用 AWS 默认地址
	PathStyle       bool
	AccessKeyID     string
	AccessKeySecret string
}

// LoadClient builds an SDK client. Without an access key the default
// credential chain (environment, shared config, instance role) is used.
// LoadClient 创建 SDK 客户端，未配置密钥时使用默认凭证链
func LoadClient(ctx context.Context, e Endpoint) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(e.Region)}
	if e.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(e.AccessKeyID, e.AccessKeySecret, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if e.URL != "" {
			o.BaseEndpoint = aws.String(e.URL)
		}
		o.UsePathStyle = e.PathStyle
	}), nil
}

// NewClient 创建 S3 存储实例
// opts 可选参数用于配置日志器等选项
func NewClient(conf *Config, opts ...Option) (*S3, error) {
	client, err := LoadClient(context.Background(), Endpoint{
		Region:          conf.Region,
		AccessKeyID:     conf.AccessKeyID,
		AccessKeySecret: conf.AccessKeySecret,
	})
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}
	return New(client, conf.BucketName, conf.CustomPath, opts...), nil
}
