package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/anonballot/internal/identity"
)

func init() {
	voterIDCmd.Flags().String("national-id", "", "national identity number")
	_ = voterIDCmd.MarkFlagRequired("national-id")
	rootCmd.AddCommand(voterIDCmd)
}

var voterIDCmd = &cobra.Command{
	Use:   "voter-id",
	Short: "Print the voter id derived from a national identity number",
	RunE: func(cmd *cobra.Command, args []string) error {
		nationalID, _ := cmd.Flags().GetString("national-id")

		voterID, err := identity.DeriveVoterID(nationalID, cfg.Voter.IDPepper)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), voterID)
		return nil
	},
}
