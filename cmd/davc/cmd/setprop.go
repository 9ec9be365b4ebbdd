package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"github.com/xxxsen/davkit/model"
)

type setpropArgs struct {
	path      string
	ns        string
	prefix    string
	set       []string
	remove    []string
	lockToken string
}

func NewSetpropCmd(c *Context) *cobra.Command {
	args := &setpropArgs{}
	subc := &cobra.Command{
		Use:   "setprop <path>",
		Short: "Set or remove dead properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.path = in[0]
			return onRunSetprop(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}
	subc.Flags().StringVar(&args.ns, "ns", "", "namespace of the properties")
	subc.Flags().StringVar(&args.prefix, "prefix", "P", "prefix bound to the namespace")
	subc.Flags().StringArrayVarP(&args.set, "set", "s", nil, "name=value to set")
	subc.Flags().StringArrayVarP(&args.remove, "remove", "r", nil, "name to remove")
	subc.Flags().StringVar(&args.lockToken, "lock-token", "", "lock token of the resource")
	return subc
}

func onRunSetprop(ctx context.Context, w io.Writer, c *Context, args *setpropArgs) error {
	set, err := parseAssignments(args.ns, args.set)
	if err != nil {
		return err
	}
	params := &model.ProppatchParameters{
		Set:       set,
		LockToken: args.lockToken,
	}
	for _, name := range args.remove {
		params.Remove = append(params.Remove, model.PropertyName{Namespace: args.ns, Name: name})
	}
	if len(args.ns) > 0 {
		params.Namespaces = map[string]string{args.prefix: args.ns}
	}
	rsp, err := c.Client.Property().Proppatch(ctx, args.path, params)
	if err != nil {
		return fmt.Errorf("proppatch failed, err:%w", err)
	}
	names := make([]model.PropertyName, 0, len(rsp.Properties))
	for name := range rsp.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i].String() < names[j].String()
	})
	failed := 0
	for _, name := range names {
		code := rsp.Properties[name]
		if code < 200 || code >= 300 {
			failed++
		}
		fmt.Fprintf(w, "%s: %d\n", name.String(), code)
	}
	if failed > 0 {
		return fmt.Errorf("proppatch rejected, failed:%d", failed)
	}
	return nil
}

func init() {
	register(NewSetpropCmd)
}
