package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/xxxsen/davkit/model"
)

type lockArgs struct {
	path    string
	timeout int64
	shared  bool
	shallow bool
	owner   string
	refresh string
}

func NewLockCmd(c *Context) *cobra.Command {
	args := &lockArgs{}
	subc := &cobra.Command{
		Use:   "lock <path>",
		Short: "Lock a resource and print the lock token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.path = in[0]
			return onRunLock(cmd.Context(), cmd.OutOrStdout(), c, args)
		},
	}
	subc.Flags().Int64VarP(&args.timeout, "timeout", "t", 3600, "lock timeout in seconds, -1 infinite, 0 server default")
	subc.Flags().BoolVar(&args.shared, "shared", false, "take a shared lock")
	subc.Flags().BoolVar(&args.shallow, "shallow", false, "lock a collection without its members")
	subc.Flags().StringVar(&args.owner, "owner", "", "lock owner, a random davc:<uuid> when empty")
	subc.Flags().StringVar(&args.refresh, "refresh", "", "refresh the lock with this token instead of taking a new one")
	return subc
}

func onRunLock(ctx context.Context, w io.Writer, c *Context, args *lockArgs) error {
	timeout, err := parseLockTimeout(args.timeout)
	if err != nil {
		return err
	}
	var rsp *model.LockResponse
	if len(args.refresh) > 0 {
		rsp, err = c.Client.Lock().RefreshLock(ctx, args.path, args.refresh, &model.RefreshLockParameters{Timeout: timeout})
	} else {
		rsp, err = c.Client.Lock().Lock(ctx, args.path, buildLockParameters(args, timeout))
	}
	if err != nil {
		return fmt.Errorf("lock failed, err:%w", err)
	}
	fmt.Fprintf(w, "token: %s\nscope: %s\ntimeout: %s\n", rsp.Lock.Token, rsp.Lock.Scope, rsp.Lock.Timeout)
	return nil
}

func buildLockParameters(args *lockArgs, timeout model.LockTimeout) *model.LockParameters {
	owner := args.owner
	if len(owner) == 0 {
		owner = "davc:" + uuid.NewString()
	}
	params := &model.LockParameters{
		ApplyTo: model.LockApplyToResourceAndDescendants,
		Timeout: timeout,
		Scope:   model.LockScopeExclusive,
		Owner:   model.TextOwner(owner),
	}
	if args.shared {
		params.Scope = model.LockScopeShared
	}
	if args.shallow {
		params.ApplyTo = model.LockApplyToResource
	}
	return params
}

type unlockArgs struct {
	path  string
	token string
}

func NewUnlockCmd(c *Context) *cobra.Command {
	args := &unlockArgs{}
	subc := &cobra.Command{
		Use:   "unlock <path> <token>",
		Short: "Release a lock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, in []string) error {
			args.path, args.token = in[0], in[1]
			return onRunUnlock(cmd.Context(), c, args)
		},
	}
	return subc
}

func onRunUnlock(ctx context.Context, c *Context, args *unlockArgs) error {
	if _, err := c.Client.Lock().Unlock(ctx, args.path, args.token, nil); err != nil {
		return fmt.Errorf("unlock failed, err:%w", err)
	}
	return nil
}

func init() {
	register(NewLockCmd)
	register(NewUnlockCmd)
}
