package local_fs

import (
	"context"
	"os"

	"github.com/AnushaPriya2003/anusha/pkg/storage/object"
	"github.com/pkg/errors"
)

// Delete removes key and everything below it.
func (p *LocalFS) Delete(ctx context.Context, key string) error {
	dst := p.realPath(key)
	if _, err := os.Lstat(dst); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(object.ErrNotExist, "localfs: %s", key)
		}
		return errors.Wrap(err, "localfs")
	}
	if err := os.RemoveAll(dst); err != nil {
		return errors.Wrap(err, "localfs")
	}
	return nil
}
