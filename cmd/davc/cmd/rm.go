package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davkit/model"
)

type rmArgs struct {
	paths     []string
	lockToken string
}

func NewRmCmd(c *Context) *cobra.Command {
	args := &rmArgs{}
	subc := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Delete resources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.paths = in
			return onRunRm(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}
	subc.Flags().StringVar(&args.lockToken, "lock-token", "", "lock token of the resource")
	return subc
}

func onRunRm(ctx context.Context, w io.Writer, c *Context, args *rmArgs) error {
	for _, p := range args.paths {
		rsp, err := c.Client.Resource().Delete(ctx, p, &model.DeleteParameters{LockToken: args.lockToken})
		if err != nil {
			return fmt.Errorf("delete failed, path:%s, err:%w", p, err)
		}
		if len(rsp.Resources) > 0 {
			writeFailedMembers(w, rsp)
			return fmt.Errorf("delete partially failed, path:%s", p)
		}
	}
	return nil
}

func init() {
	register(NewRmCmd)
}
