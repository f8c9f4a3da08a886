package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/anonballot/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "votectl",
	Short:         "Operator tooling for the ballot service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
