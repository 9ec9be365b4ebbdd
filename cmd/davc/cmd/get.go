package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type getArgs struct {
	remotes []string
	dir     string
}

func NewGetCmd(c *Context) *cobra.Command {
	args := &getArgs{}
	subc := &cobra.Command{
		Use:   "get <remote>...",
		Short: "Download files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.remotes = in
			return onRunGet(cmd.Context(), c, args)
		},
	}
	subc.Flags().StringVarP(&args.dir, "output", "o", ".", "local directory to save into")
	return subc
}

func onRunGet(ctx context.Context, c *Context, args *getArgs) error {
	start := time.Now()
	if err := c.Transfer.Download(ctx, args.remotes, args.dir); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("download finish", zap.Int("count", len(args.remotes)), zap.String("dir", args.dir), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewGetCmd)
}
