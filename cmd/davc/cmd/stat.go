package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davkit/model"
)

type statArgs struct {
	path  string
	props []string
	ns    string
}

func NewStatCmd(c *Context) *cobra.Command {
	args := &statArgs{}
	subc := &cobra.Command{
		Use:   "stat <path>",
		Short: "Show the properties of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.path = in[0]
			return onRunStat(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}
	subc.Flags().StringSliceVarP(&args.props, "prop", "p", nil, "only fetch the named properties")
	subc.Flags().StringVar(&args.ns, "ns", model.DAVNamespace, "namespace of the named properties")
	return subc
}

func onRunStat(ctx context.Context, w io.Writer, c *Context, args *statArgs) error {
	params := &model.PropfindParameters{
		ApplyTo:     model.PropfindApplyToResource,
		RequestType: model.PropfindAllProperties,
	}
	if len(args.props) > 0 {
		params.RequestType = model.PropfindNamedProperties
		for _, p := range args.props {
			params.Properties = append(params.Properties, model.PropertyName{Namespace: args.ns, Name: p})
		}
	}
	rsp, err := c.Client.Property().Propfind(ctx, args.path, params)
	if err != nil {
		return fmt.Errorf("stat failed, err:%w", err)
	}
	if len(rsp.Resources) == 0 {
		return fmt.Errorf("no resource found in response, path:%s", args.path)
	}
	return writeNodeDetail(w, rsp.Resources[0])
}

func init() {
	register(NewStatCmd)
}
