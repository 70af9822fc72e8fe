package cmd

import (
	"github.com/spf13/cobra"

	"jupkit/internal/logic/address"
	"jupkit/internal/types"
)

var (
	addressProposal   string
	addressMerkleTree string
)

var addressCmd = &cobra.Command{
	Use:   "address [wallet]",
	Short: "Print the program addresses derived for a wallet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcCtx := mustServiceContext(cmd)
		defer svcCtx.Close()

		owner, err := walletArg(svcCtx, args)
		if err != nil {
			return err
		}
		resp, err := address.NewAddress(cmd.Context(), svcCtx).Address(&types.AddressRequest{
			Wallet:     owner,
			Proposal:   addressProposal,
			MerkleTree: addressMerkleTree,
		})
		if err != nil {
			return err
		}
		printJSON(resp)
		return nil
	},
}

func init() {
	addressCmd.Flags().StringVar(&addressProposal, "proposal", "", "also derive the vote record for this proposal")
	addressCmd.Flags().StringVar(&addressMerkleTree, "merkle-tree", "", "also derive the claim status for this distributor")
	rootCmd.AddCommand(addressCmd)
}
