package transfer

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/retry"
	"github.com/xxxsen/davkit/errs"
	"github.com/xxxsen/davkit/model"
	"github.com/xxxsen/davkit/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRetryTimes    = 3
	defaultRetryInterval = 2 * time.Second
)

type Transfer struct {
	c *config
}

func New(opts ...Option) (*Transfer, error) {
	c := &config{
		Thread: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Client == nil {
		return nil, fmt.Errorf("no dav client found")
	}
	if c.Thread <= 0 {
		c.Thread = 1
	}
	return &Transfer{c: c}, nil
}

// withRetry repeats fn on transport failures only. Whatever the server
// answered, and a cancelled context, is returned as is.
func (t *Transfer) withRetry(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	var final error
	if err := retry.RetryDo(ctx, defaultRetryTimes, defaultRetryInterval, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !errs.IsTransport(err) || errs.IsCancelled(err) {
			final = err
			return nil
		}
		logutil.GetLogger(ctx).Error("transfer failed, wait retry", zap.String("name", name), zap.Error(err))
		return err
	}); err != nil {
		return err
	}
	return final
}

// Download saves every remote file into dir under its base name, at most
// Thread files at a time. Files already written stay on disk when another
// download fails.
func (t *Transfer) Download(ctx context.Context, remotes []string, dir string) error {
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(t.c.Thread)
	for _, remote := range remotes {
		remote := remote
		dst := filepath.Join(dir, path.Base(remote))
		eg.Go(func() error {
			start := time.Now()
			var size int64
			err := t.withRetry(subctx, remote, func(ctx context.Context) error {
				n, err := t.downloadOne(ctx, remote, dst)
				size = n
				return err
			})
			if err != nil {
				return fmt.Errorf("download file failed, remote:%s, err:%w", remote, err)
			}
			logutil.GetLogger(ctx).Debug("file download finish", zap.String("remote", remote), zap.String("local", dst),
				zap.String("size", humanize.IBytes(uint64(size))), zap.String("speed", speed(size, time.Since(start))))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logutil.GetLogger(ctx).Error("download files failed", zap.Error(err))
		return err
	}
	return nil
}

func (t *Transfer) downloadOne(ctx context.Context, remote string, dst string) (int64, error) {
	get := t.c.Client.File().GetProcessedFile
	if t.c.Raw {
		get = t.c.Client.File().GetRawFile
	}
	rsp, err := get(ctx, remote, nil)
	if err != nil {
		return 0, err
	}
	defer rsp.Close()
	n, err := utils.SafeSaveIOToFile(ctx, dst, rsp.Body)
	if err != nil {
		return n, fmt.Errorf("save file failed, err:%w", err)
	}
	return n, nil
}

// Upload sends the local file src to remote. The content type is sniffed
// from the file when contentType is empty.
func (t *Transfer) Upload(ctx context.Context, src string, remote string, contentType string, lockToken string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("upload source is a directory, src:%s", src)
	}
	if len(contentType) == 0 {
		mt, err := mimetype.DetectFile(src)
		if err != nil {
			return fmt.Errorf("detect mime type failed, err:%w", err)
		}
		contentType = mt.String()
	}
	start := time.Now()
	err = t.withRetry(ctx, src, func(ctx context.Context) error {
		f, err := os.Open(src)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = t.c.Client.File().PutFile(ctx, remote, f, &model.PutFileParameters{
			RequestParameters: model.RequestParameters{ContentType: contentType},
			LockToken:         lockToken,
		})
		return err
	})
	if err != nil {
		logutil.GetLogger(ctx).Error("upload file failed", zap.String("src", src), zap.String("remote", remote), zap.Error(err))
		return err
	}
	logutil.GetLogger(ctx).Debug("file upload finish", zap.String("src", src), zap.String("remote", remote),
		zap.String("content_type", contentType), zap.String("size", humanize.IBytes(uint64(info.Size()))),
		zap.String("speed", speed(info.Size(), time.Since(start))))
	return nil
}

func speed(size int64, cost time.Duration) string {
	ms := int64(cost / time.Millisecond)
	if ms <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(float64(size)*1000/float64(ms))) + "/s"
}
