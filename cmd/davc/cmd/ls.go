package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davkit/model"
)

type lsArgs struct {
	path  string
	depth string
}

func NewLsCmd(c *Context) *cobra.Command {
	args := &lsArgs{}
	subc := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a collection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, in []string) error {
			if len(in) > 0 {
				args.path = in[0]
			}
			return onRunLs(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}
	subc.Flags().StringVarP(&args.depth, "depth", "d", "1", "propfind depth, 0|1|infinity")
	return subc
}

func onRunLs(ctx context.Context, w io.Writer, c *Context, args *lsArgs) error {
	applyTo, err := parsePropfindDepth(args.depth)
	if err != nil {
		return err
	}
	rsp, err := c.Client.Property().Propfind(ctx, args.path, &model.PropfindParameters{ApplyTo: applyTo})
	if err != nil {
		return fmt.Errorf("list failed, err:%w", err)
	}
	nodes := rsp.Resources
	// the queried collection itself comes first
	if applyTo.Depth() != "0" && len(nodes) > 0 && nodes[0].IsCollection() {
		nodes = nodes[1:]
	}
	return writeNodes(w, nodes)
}

func init() {
	register(NewLsCmd)
}
