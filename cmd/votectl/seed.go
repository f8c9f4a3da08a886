package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/anonballot/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
	"github.com/vncsmyrnk/anonballot/internal/identity"
)

func init() {
	seedCmd.Flags().String("national-id", "", "national identity number")
	seedCmd.Flags().String("name", "", "voter name")
	seedCmd.Flags().String("biometric-proof", "", "enrolment biometric proof")
	for _, name := range []string{"national-id", "name", "biometric-proof"} {
		_ = seedCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Register a voter in the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := postgres.Open(ctx, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		nationalID, _ := cmd.Flags().GetString("national-id")
		name, _ := cmd.Flags().GetString("name")
		proof, _ := cmd.Flags().GetString("biometric-proof")

		voterID, err := registerVoter(ctx, postgres.NewVoterRepository(db), nationalID, name, proof, cfg.Voter.IDPepper)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "registered voter %s\n", voterID)
		return nil
	},
}

func registerVoter(ctx context.Context, voters ports.VoterRepository, nationalID, name, proof, pepper string) (string, error) {
	if name == "" || proof == "" {
		return "", errors.New("name and biometric proof are required")
	}

	voterID, err := identity.DeriveVoterID(nationalID, pepper)
	if err != nil {
		return "", err
	}

	err = voters.Register(ctx, &domain.Voter{
		ID:                 voterID,
		Name:               name,
		BiometricReference: identity.BiometricReference(proof),
	})
	if err != nil {
		return "", fmt.Errorf("failed to register voter %s: %w", voterID, err)
	}
	return voterID, nil
}
