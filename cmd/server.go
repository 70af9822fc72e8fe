package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"

	"jupkit/internal/config"
	"jupkit/internal/handler"
	"jupkit/internal/svc"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the read-only REST API",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svcCtx := mustServiceContext(cmd)
		defer svcCtx.Close()
		Start(config.C, svcCtx)
	},
}

func Start(c config.Config, svcCtx *svc.ServiceContext) {
	printBanner(c.Banner)

	server := rest.MustNewServer(c.Rest.RestConf)
	defer server.Stop()
	handler.RegisterHandlers(server, svcCtx)

	logx.Infof("Starting rest server at %s:%d...", c.Rest.Host, c.Rest.Port)
	fmt.Printf("Starting rest server at %s:%d...\n", c.Rest.Host, c.Rest.Port)
	server.Start()
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
