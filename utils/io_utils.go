package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type ctxReader struct {
	ctx context.Context
	r   io.Reader
	n   int64
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// SafeSaveIOToFile streams r into a temp file beside dst and renames it over
// dst once the stream ends. A failed or cancelled copy leaves dst untouched.
// The returned size counts the bytes read, also on failure.
func SafeSaveIOToFile(ctx context.Context, dst string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("create directory failed, err:%w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+"."+uuid.NewString()+".*")
	if err != nil {
		return 0, fmt.Errorf("create tmp file failed, err:%w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)
	cr := &ctxReader{ctx: ctx, r: r}
	if _, err := io.Copy(f, cr); err != nil {
		_ = f.Close()
		return cr.n, fmt.Errorf("copy stream to tmp file failed, size:%d, err:%w", cr.n, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return cr.n, fmt.Errorf("sync tmp file failed, err:%w", err)
	}
	if err := f.Close(); err != nil {
		return cr.n, fmt.Errorf("close tmp file failed, err:%w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		return cr.n, fmt.Errorf("rename tmp file failed, err:%w", err)
	}
	return cr.n, nil
}
