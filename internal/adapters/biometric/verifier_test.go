package biometric

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/anonballot/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/identity"
)

type failingVoters struct {
	*memory.VoterRepository
}

func (failingVoters) GetByID(context.Context, string) (*domain.Voter, error) {
	return nil, errors.New("connection refused")
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	voters := memory.NewVoterRepository()
	require.NoError(t, voters.Register(ctx, &domain.Voter{
		ID:                 "V1",
		Name:               "Ada",
		BiometricReference: identity.BiometricReference("P1"),
	}))
	require.NoError(t, voters.Register(ctx, &domain.Voter{ID: "V2", Name: "No Reference"}))

	verifier := NewVerifier(voters)

	tests := []struct {
		name    string
		voterID string
		proof   string
		want    bool
	}{
		{name: "matching_proof", voterID: "V1", proof: "P1", want: true},
		{name: "wrong_proof", voterID: "V1", proof: "P2", want: false},
		{name: "empty_proof", voterID: "V1", proof: "", want: false},
		{name: "unknown_voter", voterID: "V404", proof: "P1", want: false},
		{name: "voter_without_reference", voterID: "V2", proof: "P1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := verifier.Verify(ctx, tt.voterID, tt.proof)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVerifyStoreFailure(t *testing.T) {
	verifier := NewVerifier(failingVoters{memory.NewVoterRepository()})

	ok, err := verifier.Verify(context.Background(), "V1", "P1")
	require.Error(t, err)
	assert.False(t, ok)
}
