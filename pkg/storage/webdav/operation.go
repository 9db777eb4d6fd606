package webdav

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/AnushaPriya2003/anusha/pkg/storage/object"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// List 列出 WebDAV 服务器上目录的直接子项。
func (w *WebDAV) List(ctx context.Context, dir string) ([]object.Object, error) {
	files, err := w.Client.ReadDir(w.remotePath(dir))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, errors.Wrapf(object.ErrNotExist, "webdav: %s", dir)
		}
		return nil, errors.Wrap(err, "webdav")
	}

	objects := make([]object.Object, 0, len(files))
	for _, f := range files {
		objects = append(objects, object.Object{
			Name:    f.Name(),
			Key:     object.Child(dir, f.Name()),
			IsDir:   f.IsDir(),
			Size:    f.Size(),
			ModTime: f.ModTime(),
		})
	}
	return objects, nil
}

// Delete 从 WebDAV 服务器递归删除 key。
func (w *WebDAV) Delete(ctx context.Context, key string) error {
	remote := w.remotePath(key)
	if _, err := w.Client.Stat(remote); err != nil {
		if gowebdav.IsErrNotFound(err) {
			return errors.Wrapf(object.ErrNotExist, "webdav: %s", key)
		}
		return errors.Wrap(err, "webdav")
	}
	if err := w.Client.RemoveAll(remote); err != nil {
		return errors.Wrap(err, "webdav")
	}
	return nil
}

// SendContent 将二进制内容上传到 WebDAV 服务器。
func (w *WebDAV) SendContent(ctx context.Context, key string, content []byte, modTime time.Time) (string, error) {
	remote := w.remotePath(key)

	if err := w.Client.MkdirAll(path.Dir(remote), 0755); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	if err := w.Client.Write(remote, content, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return remote, nil
}
