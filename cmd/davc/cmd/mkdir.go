package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davkit/errs"
)

type mkdirArgs struct {
	paths   []string
	parents bool
}

func NewMkdirCmd(c *Context) *cobra.Command {
	args := &mkdirArgs{}
	subc := &cobra.Command{
		Use:   "mkdir <path>...",
		Short: "Create collections",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.paths = in
			return onRunMkdir(cmd.Context(), c, args)
		},
	}
	subc.Flags().BoolVarP(&args.parents, "parents", "p", false, "create missing parents, existing collections are no error")
	return subc
}

// collectionChain returns "a/", "a/b/", "a/b/c/" for "a/b/c".
func collectionChain(p string) []string {
	prefix := ""
	if strings.HasPrefix(p, "/") {
		prefix = "/"
	}
	rs := make([]string, 0, 4)
	for _, part := range strings.Split(strings.Trim(p, "/"), "/") {
		if len(part) == 0 {
			continue
		}
		prefix += part + "/"
		rs = append(rs, prefix)
	}
	return rs
}

func onRunMkdir(ctx context.Context, c *Context, args *mkdirArgs) error {
	for _, p := range args.paths {
		if !args.parents {
			if _, err := c.Client.Resource().Mkcol(ctx, strings.TrimSuffix(p, "/")+"/", nil); err != nil {
				return fmt.Errorf("mkdir failed, path:%s, err:%w", p, err)
			}
			continue
		}
		for _, dir := range collectionChain(p) {
			_, err := c.Client.Resource().Mkcol(ctx, dir, nil)
			if err == nil || errs.IsStatus(err, http.StatusMethodNotAllowed) {
				continue
			}
			return fmt.Errorf("mkdir failed, path:%s, err:%w", dir, err)
		}
	}
	return nil
}

func init() {
	register(NewMkdirCmd)
}
