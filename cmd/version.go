package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jupkit/internal/logic/version"
	"jupkit/internal/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := version.NewGetVersion(cmd.Context(), nil).GetVersion(&types.GetVersionRequest{})
		if err != nil {
			return err
		}
		fmt.Printf("jupkit %s (%s, %s) %s\n", resp.Version, resp.Commit, resp.Date, resp.GoVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
