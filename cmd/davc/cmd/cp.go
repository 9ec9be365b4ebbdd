package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davkit/model"
)

type transferArgs struct {
	src           string
	dst           string
	overwrite     bool
	shallow       bool
	srcLockToken  string
	destLockToken string
}

func bindTransferFlags(subc *cobra.Command, args *transferArgs) {
	subc.Flags().BoolVarP(&args.overwrite, "overwrite", "f", false, "replace an existing destination")
	subc.Flags().StringVar(&args.srcLockToken, "lock-token", "", "lock token of the source")
	subc.Flags().StringVar(&args.destLockToken, "dest-lock-token", "", "lock token of the destination")
}

func (a *transferArgs) applyTo() model.CopyApplyTo {
	if a.shallow {
		return model.CopyApplyToResource
	}
	return model.CopyApplyToResourceAndDescendants
}

func NewCpCmd(c *Context) *cobra.Command {
	args := &transferArgs{}
	subc := &cobra.Command{
		Use:   "cp <src> <dst>",
		Short: "Copy a resource on the server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.src, args.dst = in[0], in[1]
			return onRunCp(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}
	bindTransferFlags(subc, args)
	subc.Flags().BoolVar(&args.shallow, "shallow", false, "copy a collection without its members")
	return subc
}

func onRunCp(ctx context.Context, w io.Writer, c *Context, args *transferArgs) error {
	rsp, err := c.Client.Resource().Copy(ctx, args.src, args.dst, &model.CopyParameters{
		ApplyTo:         args.applyTo(),
		Overwrite:       args.overwrite,
		SourceLockToken: args.srcLockToken,
		DestLockToken:   args.destLockToken,
	})
	if err != nil {
		return fmt.Errorf("copy failed, err:%w", err)
	}
	if len(rsp.Resources) > 0 {
		writeFailedMembers(w, rsp)
		return fmt.Errorf("copy partially failed")
	}
	return nil
}

func NewMvCmd(c *Context) *cobra.Command {
	args := &transferArgs{}
	subc := &cobra.Command{
		Use:   "mv <src> <dst>",
		Short: "Move a resource on the server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.src, args.dst = in[0], in[1]
			return onRunMv(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}
	bindTransferFlags(subc, args)
	return subc
}

func onRunMv(ctx context.Context, w io.Writer, c *Context, args *transferArgs) error {
	rsp, err := c.Client.Resource().Move(ctx, args.src, args.dst, &model.MoveParameters{
		ApplyTo:         args.applyTo(),
		Overwrite:       args.overwrite,
		SourceLockToken: args.srcLockToken,
		DestLockToken:   args.destLockToken,
	})
	if err != nil {
		return fmt.Errorf("move failed, err:%w", err)
	}
	if len(rsp.Resources) > 0 {
		writeFailedMembers(w, rsp)
		return fmt.Errorf("move partially failed")
	}
	return nil
}

func init() {
	register(NewCpCmd)
	register(NewMvCmd)
}
