package cmd

import (
	"github.com/spf13/cobra"

	"jupkit/internal/logic/vote"
	"jupkit/internal/types"
)

var voteCmd = &cobra.Command{
	Use:   "vote <proposal> <side>",
	Short: "Vote on a governance proposal",
	Long: `Vote on a governance proposal with the wallet's escrow.
side is one of against, for, abstain or their numbers 1, 2, 3.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		side, err := vote.ParseSide(args[1])
		if err != nil {
			return err
		}
		svcCtx := mustServiceContext(cmd)
		defer svcCtx.Close()

		resp, err := vote.NewVote(cmd.Context(), svcCtx).Vote(&types.VoteRequest{Proposal: args[0], Side: side})
		if resp != nil {
			printVote(cmd.OutOrStdout(), resp, err)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(voteCmd)
}
