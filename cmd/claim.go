package cmd

import (
	"github.com/spf13/cobra"

	"jupkit/internal/logic/claim"
	"jupkit/internal/types"
)

var claimMint string

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim the wallet's airdrop allocation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svcCtx := mustServiceContext(cmd)
		defer svcCtx.Close()

		resp, err := claim.NewClaim(cmd.Context(), svcCtx).Claim(&types.ClaimRequest{Mint: claimMint})
		if resp != nil {
			printClaim(cmd.OutOrStdout(), resp, err)
		}
		return err
	},
}

func init() {
	claimCmd.Flags().StringVar(&claimMint, "mint", "", "airdrop mint (default Claim.Mint)")
	rootCmd.AddCommand(claimCmd)
}
