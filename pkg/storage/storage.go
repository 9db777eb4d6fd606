package storage

import (
	"context"
	"errors"
	"time"

	"github.com/AnushaPriya2003/anusha/pkg/storage/aliyun_oss"
	"github.com/AnushaPriya2003/anusha/pkg/storage/aws_s3"
	"github.com/AnushaPriya2003/anusha/pkg/storage/cloudflare_r2"
	"github.com/AnushaPriya2003/anusha/pkg/storage/local_fs"
	"github.com/AnushaPriya2003/anusha/pkg/storage/minio"
	"github.com/AnushaPriya2003/anusha/pkg/storage/object"
	"github.com/AnushaPriya2003/anusha/pkg/storage/webdav"

	"github.com/jinzhu/copier"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

type Type = string
type CloudType = Type

const OSS CloudType = "oss"
const R2 CloudType = "r2"
const S3 CloudType = "s3"
const LOCAL Type = "localfs"
const MinIO CloudType = "minio"
const WebDAV CloudType = "webdav"

var StorageTypeMap = map[Type]bool{
	OSS:    true,
	R2:     true,
	S3:     true,
	LOCAL:  true,
	MinIO:  true,
	WebDAV: true,
}

var CloudStorageTypeMap = map[Type]bool{
	OSS:   true,
	R2:    true,
	S3:    true,
	MinIO: true,
}

var ErrInvalidStorageType = errors.New("storage: invalid storage type")

// ErrNotExist is returned (wrapped) when a listed or deleted path is gone.
var ErrNotExist = object.ErrNotExist

// Object is one immediate child returned by List.
type Object = object.Object

// Config Unified storage configuration
type Config struct {
	Type Type `yaml:"type" default:"localfs" validate:"required,oneof=localfs s3 minio r2 oss webdav"`

	// Common settings
	CustomPath string `yaml:"custom-path"`
	// DeleteRate limits deletions per second, 0 means unlimited
	DeleteRate float64 `yaml:"delete-rate" default:"0" validate:"gte=0"`

	// Cloud Storage (S3/OSS/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific
	// Jurisdiction Cloudflare R2 specific: eu, fedramp
	Jurisdiction string `yaml:"jurisdiction" validate:"omitempty,oneof=eu fedramp"`

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/repository"`
}

// Storager is the minimal repository surface the job needs: enumerate the
// immediate children of a path, delete a path with everything below it, and
// write content.
type Storager interface {
	List(ctx context.Context, dir string) ([]Object, error)
	Delete(ctx context.Context, key string) error
	SendContent(ctx context.Context, key string, content []byte, modTime time.Time) (string, error)
}

func NewClient(config *Config, logger *zap.Logger) (Storager, error) {
	if config == nil {
		return nil, ErrInvalidStorageType
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch config.Type {
	case LOCAL:
		cfg := &local_fs.Config{}
		if err := copier.Copy(cfg, config); err != nil {
			return nil, pkgerrors.Wrap(err, "localfs config")
		}
		return local_fs.NewClient(cfg)
	case OSS:
		cfg := &aliyun_oss.Config{}
		if err := copier.Copy(cfg, config); err != nil {
			return nil, pkgerrors.Wrap(err, "aliyun_oss config")
		}
		return aliyun_oss.NewClient(cfg)
	case R2:
		cfg := &cloudflare_r2.Config{}
		if err := copier.Copy(cfg, config); err != nil {
			return nil, pkgerrors.Wrap(err, "cloudflare_r2 config")
		}
		return cloudflare_r2.NewClient(cfg, aws_s3.WithLogger(logger))
	case S3:
		cfg := &aws_s3.Config{}
		if err := copier.Copy(cfg, config); err != nil {
			return nil, pkgerrors.Wrap(err, "aws_s3 config")
		}
		return aws_s3.NewClient(cfg, aws_s3.WithLogger(logger))
	case MinIO:
		cfg := &minio.Config{}
		if err := copier.Copy(cfg, config); err != nil {
			return nil, pkgerrors.Wrap(err, "minio config")
		}
		return minio.NewClient(cfg, aws_s3.WithLogger(logger))
	case WebDAV:
		cfg := &webdav.Config{}
		if err := copier.Copy(cfg, config); err != nil {
			return nil, pkgerrors.Wrap(err, "webdav config")
		}
		return webdav.NewClient(cfg)
	}
	return nil, ErrInvalidStorageType
}
