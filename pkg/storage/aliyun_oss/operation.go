package aliyun_oss

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/AnushaPriya2003/anusha/pkg/fileurl"
	"github.com/AnushaPriya2003/anusha/pkg/storage/object"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

// List 列出 dir 的直接子项，CommonPrefixes 为目录
func (p *OSS) List(ctx context.Context, dir string) ([]object.Object, error) {
	prefix := fileurl.DirKey(fileurl.ObjectKey(p.Config.CustomPath, dir))

	var objects []object.Object
	marker := ""
	for {
		lor, err := p.Bucket.ListObjects(oss.Prefix(prefix), oss.Delimiter("/"), oss.Marker(marker), oss.MaxKeys(maxKeys), oss.WithContext(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "aliyun_oss")
		}
		for _, cp := range lor.CommonPrefixes {
			name := object.Base(cp)
			objects = append(objects, object.Object{Name: name, Key: object.Child(dir, name), IsDir: true})
		}
		for _, obj := range lor.Objects {
			if obj.Key == prefix {
				continue
			}
			name := object.Base(obj.Key)
			objects = append(objects, object.Object{
				Name:    name,
				Key:     object.Child(dir, name),
				Size:    obj.Size,
				ModTime: obj.LastModified,
			})
		}
		if !lor.IsTruncated {
			break
		}
		marker = lor.NextMarker
	}
	return objects, nil
}

// Delete 删除 key 及其下所有对象，不存在时返回 object.ErrNotExist
func (p *OSS) Delete(ctx context.Context, key string) error {
	target := fileurl.ObjectKey(p.Config.CustomPath, key)

	var keys []string
	marker := ""
	for {
		lor, err := p.Bucket.ListObjects(oss.Prefix(target), oss.Marker(marker), oss.MaxKeys(maxKeys), oss.WithContext(ctx))
		if err != nil {
			return errors.Wrap(err, "aliyun_oss")
		}
		for _, obj := range lor.Objects {
			if obj.Key == target || strings.HasPrefix(obj.Key, target+"/") {
				keys = append(keys, obj.Key)
			}
		}
		if !lor.IsTruncated {
			break
		}
		marker = lor.NextMarker
	}

	if len(keys) == 0 {
		return errors.Wrapf(object.ErrNotExist, "aliyun_oss: %s", key)
	}

	for start := 0; start < len(keys); start += maxKeys {
		end := min(start+maxKeys, len(keys))
		if _, err := p.Bucket.DeleteObjects(keys[start:end], oss.DeleteObjectsQuiet(true), oss.WithContext(ctx)); err != nil {
			return errors.Wrap(err, "aliyun_oss")
		}
	}
	return nil
}

func (p *OSS) SendContent(ctx context.Context, key string, content []byte, modTime time.Time) (string, error) {
	fileKey := fileurl.ObjectKey(p.Config.CustomPath, key)
	if err := p.Bucket.PutObject(fileKey, bytes.NewReader(content), oss.WithContext(ctx)); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}
