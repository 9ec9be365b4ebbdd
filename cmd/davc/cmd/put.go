package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type putArgs struct {
	file        string
	remote      string
	contentType string
	lockToken   string
}

func NewPutCmd(c *Context) *cobra.Command {
	args := &putArgs{}
	subc := &cobra.Command{
		Use:   "put <file> [remote]",
		Short: "Upload a file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.file = in[0]
			args.remote = filepath.Base(args.file)
			if len(in) > 1 {
				args.remote = in[1]
			}
			// a trailing slash names the target collection
			if strings.HasSuffix(args.remote, "/") {
				args.remote += filepath.Base(args.file)
			}
			return onRunPut(cmd.Context(), c, args)
		},
	}
	subc.Flags().StringVarP(&args.contentType, "content-type", "t", "", "content type, detected from the file when empty")
	subc.Flags().StringVar(&args.lockToken, "lock-token", "", "lock token of the target")
	return subc
}

func onRunPut(ctx context.Context, c *Context, args *putArgs) error {
	start := time.Now()
	if err := c.Transfer.Upload(ctx, args.file, args.remote, args.contentType, args.lockToken); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("upload finish", zap.String("file", args.file), zap.String("remote", args.remote), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewPutCmd)
}
