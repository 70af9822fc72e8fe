package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/config"
	"jupkit/internal/svc"
)

var (
	cfgFile string
	dryRun  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jupkit",
	Short: "Jupiter airdrop, staking, voting and swap toolkit",
	Long: `jupkit claims Jupiter airdrops, locks JUP in the governance escrow,
votes on proposals and swaps through the Jupiter aggregator.

Examples:
  jupkit claim                          # claim the configured airdrop
  jupkit stake 120.5                    # lock 120.5 JUP at max duration
  jupkit vote <proposal> for            # vote on a proposal
  jupkit claim-swap                     # claim and sell everything for USDT
  jupkit check wallets.yaml             # eligibility of many wallets
  jupkit --dry-run stake 10             # simulate and print the transaction`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logx.Error(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "etc/etc.yaml", "config file")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "simulate transactions and print them instead of sending")
}

func loadConfig() config.Config {
	// .env is optional
	_ = godotenv.Load()

	var c config.Config
	conf.MustLoad(cfgFile, &c, conf.UseEnv())
	config.C = c
	logx.MustSetup(c.Log.LogConf)
	return c
}

func printBanner(c config.BannerConf) {
	figure.NewColorFigure(c.Text, c.FontName, c.Color, true).Print()
	fmt.Println()
}

// mustServiceContext loads the config and wires every client.
func mustServiceContext(cmd *cobra.Command) *svc.ServiceContext {
	c := loadConfig()
	svcCtx, err := svc.NewServiceContext(cmd.Context(), c)
	logx.Must(err)
	svcCtx.DryRun = dryRun
	return svcCtx
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logx.Error(err)
		return
	}
	fmt.Println(string(out))
}
