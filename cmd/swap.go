package cmd

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"jupkit/internal/logic/swap"
	"jupkit/internal/types"
)

var (
	swapOutput   string
	swapSlippage uint16
	swapMinOut   uint64
)

var swapCmd = &cobra.Command{
	Use:   "swap <input-mint> <raw-amount>",
	Short: "Swap tokens through the Jupiter aggregator",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := cast.ToUint64E(args[1])
		if err != nil || amount == 0 {
			return fmt.Errorf("amount %q must be a positive integer of raw units", args[1])
		}
		svcCtx := mustServiceContext(cmd)
		defer svcCtx.Close()

		resp, err := swap.NewSwap(cmd.Context(), svcCtx).Swap(&types.SwapRequest{
			InputMint:   args[0],
			OutputMint:  swapOutput,
			Amount:      amount,
			SlippageBps: swapSlippage,
			MinOut:      swapMinOut,
		})
		if resp != nil {
			printSwap(cmd.OutOrStdout(), resp, err)
		}
		return err
	},
}

func init() {
	swapCmd.Flags().StringVar(&swapOutput, "output", "", "output mint (default Swap.OutputMint)")
	swapCmd.Flags().Uint16Var(&swapSlippage, "slippage-bps", 0, "slippage in basis points (default Swap.SlippageBps)")
	swapCmd.Flags().Uint64Var(&swapMinOut, "min-out", 0, "refuse quotes whose worst-case output is below this")
	rootCmd.AddCommand(swapCmd)
}
