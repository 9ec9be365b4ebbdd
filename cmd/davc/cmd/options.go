package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func NewOptionsCmd(c *Context) *cobra.Command {
	subc := &cobra.Command{
		Use:   "options [path]",
		Short: "Show the dav classes and methods a server supports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, in []string) error {
			path := ""
			if len(in) > 0 {
				path = in[0]
			}
			return onRunOptions(cmd.Context(), cmd.OutOrStdout(), c, path)
		},
	}
	return subc
}

func onRunOptions(ctx context.Context, w io.Writer, c *Context, path string) error {
	rsp, err := c.Client.Resource().Options(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("options failed, err:%w", err)
	}
	fmt.Fprintf(w, "dav: %s\nallow: %s\nlocking: %t\n", strings.Join(rsp.DAV, ", "), strings.Join(rsp.Allow, ", "), rsp.SupportsClass("2"))
	return nil
}

func init() {
	register(NewOptionsCmd)
}
