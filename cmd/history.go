package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jupkit/internal/logic/history"
	"jupkit/internal/svc"
	"jupkit/internal/types"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [wallet]",
	Short: "List journaled transactions of a wallet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcCtx := mustServiceContext(cmd)
		defer svcCtx.Close()

		owner, err := walletArg(svcCtx, args)
		if err != nil {
			return err
		}
		resp, err := history.NewHistory(cmd.Context(), svcCtx).History(&types.HistoryRequest{Wallet: owner, Limit: historyLimit})
		if err != nil {
			return err
		}
		for _, e := range resp.Entries {
			status := okLabel(e.Status)
			if e.Status == "failed" {
				status = failLabel(e.Status)
			}
			fmt.Printf("%s  %-6s %-10s %d %s %s\n",
				time.Unix(e.CreatedAt, 0).Format(time.DateTime), e.Kind, status, e.Amount, e.Signature, e.Error)
		}
		return nil
	},
}

// walletArg returns the first argument or the configured wallet.
func walletArg(svcCtx *svc.ServiceContext, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	w, err := svcCtx.RequireWallet()
	if err != nil {
		return "", err
	}
	return w.PublicKey().String(), nil
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of entries")
	rootCmd.AddCommand(historyCmd)
}
