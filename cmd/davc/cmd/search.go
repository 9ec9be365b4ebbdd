package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davkit/model"
)

type searchArgs struct {
	path     string
	keyword  string
	scope    string
	bodyFile string
}

func NewSearchCmd(c *Context) *cobra.Command {
	args := &searchArgs{}
	subc := &cobra.Command{
		Use:   "search [path]",
		Short: "Run a DASL search",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, in []string) error {
			if len(in) > 0 {
				args.path = in[0]
			}
			return onRunSearch(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}
	subc.Flags().StringVarP(&args.keyword, "keyword", "k", "", "match displayname against %keyword%")
	subc.Flags().StringVar(&args.scope, "scope", "", "href to search from, the request path when empty")
	subc.Flags().StringVar(&args.bodyFile, "body-file", "", "send this file as the search request")
	return subc
}

func onRunSearch(ctx context.Context, w io.Writer, c *Context, args *searchArgs) error {
	params := &model.SearchParameters{
		Scope:   args.scope,
		Keyword: args.keyword,
	}
	if len(args.bodyFile) > 0 {
		raw, err := os.ReadFile(args.bodyFile)
		if err != nil {
			return fmt.Errorf("read search body failed, err:%w", err)
		}
		params.Body = string(raw)
	}
	rsp, err := c.Client.Search().Search(ctx, args.path, params)
	if err != nil {
		return fmt.Errorf("search failed, err:%w", err)
	}
	return writeNodes(w, rsp.Resources)
}

func init() {
	register(NewSearchCmd)
}
