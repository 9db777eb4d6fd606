package aws_s3

import (
	"bytes"
	"context"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/AnushaPriya2003/anusha/pkg/fileurl"
	"github.com/AnushaPriya2003/anusha/pkg/logger"
	"github.com/AnushaPriya2003/anusha/pkg/storage/object"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// List returns the common prefixes (folders) and objects directly below dir.
func (p *S3) List(ctx context.Context, dir string) ([]object.Object, error) {
	prefix := fileurl.DirKey(fileurl.ObjectKey(p.CustomPath, dir))

	paginator := s3.NewListObjectsV2Paginator(p.S3Client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(p.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var objects []object.Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, p.name)
		}
		for _, cp := range page.CommonPrefixes {
			name := object.Base(aws.ToString(cp.Prefix))
			objects = append(objects, object.Object{
				Name:  name,
				Key:   object.Child(dir, name),
				IsDir: true,
			})
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			// 目录占位对象
			if key == prefix {
				continue
			}
			name := object.Base(key)
			objects = append(objects, object.Object{
				Name:    name,
				Key:     object.Child(dir, name),
				Size:    aws.ToInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}

// Delete removes the object at key and every object under key + "/".
func (p *S3) Delete(ctx context.Context, key string) error {
	target := fileurl.ObjectKey(p.CustomPath, key)

	paginator := s3.NewListObjectsV2Paginator(p.S3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.Bucket),
		Prefix: aws.String(target),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return errors.Wrap(err, p.name)
		}
		for _, obj := range page.Contents {
			k := aws.ToString(obj.Key)
			if k == target || strings.HasPrefix(k, target+"/") {
				keys = append(keys, k)
			}
		}
	}

	if len(keys) == 0 {
		return errors.Wrapf(object.ErrNotExist, "%s: %s", p.name, key)
	}

	for _, batch := range chunkKeys(keys, maxDeleteBatch) {
		out, err := p.S3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(p.Bucket),
			Delete: deleteRequest(batch),
		})
		if err != nil {
			return errors.Wrap(err, p.name)
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return errors.Errorf("%s: delete %s failed: %s %s", p.name,
				aws.ToString(first.Key), aws.ToString(first.Code), aws.ToString(first.Message))
		}
	}

	p.logger.Debug("objects deleted",
		zap.String(logger.FieldBucket, p.Bucket),
		zap.String(logger.FieldPath, key),
		zap.Int("count", len(keys)))
	return nil
}

// SendContent uploads content to key.
func (p *S3) SendContent(ctx context.Context, key string, content []byte, modTime time.Time) (string, error) {
	fileKey := fileurl.ObjectKey(p.CustomPath, key)

	input := &s3.PutObjectInput{
		Bucket: aws.String(p.Bucket),
		Key:    aws.String(fileKey),
		Body:   bytes.NewReader(content),
	}
	if ct := mime.TypeByExtension(path.Ext(fileKey)); ct != "" {
		input.ContentType = aws.String(ct)
	}
	if !modTime.IsZero() {
		input.Metadata = map[string]string{"mtime": modTime.UTC().Format(time.RFC3339)}
	}

	if _, err := p.S3Client.PutObject(ctx, input); err != nil {
		return "", errors.Wrap(err, p.name)
	}
	return fileKey, nil
}
