package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/davkit/cmd/davc/config"
	"github.com/xxxsen/davkit/davc"
	"github.com/xxxsen/davkit/transfer"
)

const (
	defaultConfigFileEnv = "DAVC_CONFIG"
)

var cmds []CreateFunc

type Context struct {
	Client   *davc.Client
	Transfer *transfer.Transfer
	Config   *config.Config
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func initContext(ctx *Context, file string) error {
	c, err := config.Load(file)
	if err != nil {
		return fmt.Errorf("load config failed, err:%w", err)
	}
	ctx.Config = c
	logger.Init("", c.LogLevel, 0, 0, 0, true)
	opts := []davc.Option{
		davc.WithBaseURI(c.BaseURI),
		davc.WithTimeout(time.Duration(c.Timeout) * time.Second),
	}
	if len(c.User) > 0 {
		opts = append(opts, davc.WithAuth(c.User, c.Password))
	}
	if len(c.UserAgent) > 0 {
		opts = append(opts, davc.WithUserAgent(c.UserAgent))
	}
	cli, err := davc.New(opts...)
	if err != nil {
		return fmt.Errorf("create dav client failed, err:%w", err)
	}
	tr, err := transfer.New(transfer.WithClient(cli), transfer.WithThread(c.Thread), transfer.WithRaw(c.Raw))
	if err != nil {
		_ = cli.Close()
		return fmt.Errorf("create transfer failed, err:%w", err)
	}
	ctx.Client = cli
	ctx.Transfer = tr
	return nil
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	rootCmd := &cobra.Command{
		Use:           "davc",
		Short:         "WebDAV CLI tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		file := configFile
		if len(file) == 0 {
			file = os.Getenv(defaultConfigFileEnv)
		}
		return initContext(ctx, file)
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if ctx.Client == nil {
			return nil
		}
		return ctx.Client.Close()
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	return rootCmd
}
