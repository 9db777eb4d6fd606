package local_fs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/AnushaPriya2003/anusha/pkg/storage/object"
	"github.com/pkg/errors"
)

// List returns the immediate children of dir in directory order.
func (p *LocalFS) List(ctx context.Context, dir string) ([]object.Object, error) {
	entries, err := os.ReadDir(p.realPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(object.ErrNotExist, "localfs: %s", dir)
		}
		return nil, errors.Wrap(err, "localfs")
	}

	objects := make([]object.Object, 0, len(entries))
	for _, e := range entries {
		obj := object.Object{
			Name:  e.Name(),
			Key:   object.Child(dir, e.Name()),
			IsDir: e.IsDir(),
		}
		if info, err := e.Info(); err == nil {
			obj.Size = info.Size()
			obj.ModTime = info.ModTime()
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// SendContent writes content to key, creating parent directories.
func (p *LocalFS) SendContent(ctx context.Context, key string, content []byte, modTime time.Time) (string, error) {
	dst := p.realPath(key)

	if err := os.MkdirAll(filepath.Dir(dst), 0754); err != nil {
		return "", errors.Wrap(err, "localfs")
	}
	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", errors.Wrap(err, "localfs")
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(dst, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "localfs")
		}
	}
	return dst, nil
}
