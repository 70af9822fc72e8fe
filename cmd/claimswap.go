package cmd

import (
	"github.com/spf13/cobra"

	"jupkit/internal/logic/pipeline"
	"jupkit/internal/types"
)

var claimSwapCmd = &cobra.Command{
	Use:   "claim-swap",
	Short: "Claim the allocation, then swap all of it into the configured output mint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svcCtx := mustServiceContext(cmd)
		defer svcCtx.Close()

		resp, err := pipeline.NewClaimSwap(cmd.Context(), svcCtx).ClaimSwap(&types.ClaimRequest{Mint: claimMint})
		if resp != nil && resp.Claim != nil {
			claimErr := err
			if resp.ClaimOK {
				claimErr = nil
			}
			printClaim(cmd.OutOrStdout(), resp.Claim, claimErr)
		}
		if resp != nil && resp.Swap != nil {
			printSwap(cmd.OutOrStdout(), resp.Swap, err)
		}
		return err
	},
}

func init() {
	claimSwapCmd.Flags().StringVar(&claimMint, "mint", "", "airdrop mint (default Claim.Mint)")
	rootCmd.AddCommand(claimSwapCmd)
}
