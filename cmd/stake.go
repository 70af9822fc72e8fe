package cmd

import (
	"github.com/spf13/cobra"

	"jupkit/internal/logic/stake"
	"jupkit/internal/types"
)

var stakeCmd = &cobra.Command{
	Use:   "stake <amount>",
	Short: "Lock tokens into the governance escrow at maximum duration",
	Long: `Lock tokens into the governance escrow at maximum duration.
The amount is in whole tokens, e.g. 12.5. The escrow and its token
account are created on first use.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcCtx := mustServiceContext(cmd)
		defer svcCtx.Close()

		resp, err := stake.NewStake(cmd.Context(), svcCtx).Stake(&types.StakeRequest{Amount: args[0]})
		if resp != nil {
			printStake(cmd.OutOrStdout(), resp, err)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(stakeCmd)
}
