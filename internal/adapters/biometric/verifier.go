package biometric

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
	"github.com/vncsmyrnk/anonballot/internal/identity"
)

// ReferenceVerifier matches a proof against the reference stored with the
// voter at registration.
type ReferenceVerifier struct {
	voters ports.VoterRepository
}

func NewVerifier(voters ports.VoterRepository) ports.BiometricOracle {
	return &ReferenceVerifier{voters: voters}
}

func (v *ReferenceVerifier) Verify(ctx context.Context, voterID string, proof string) (bool, error) {
	if proof == "" {
		return false, nil
	}

	voter, err := v.voters.GetByID(ctx, voterID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownVoter) {
			return false, nil
		}
		return false, err
	}
	if voter.BiometricReference == "" {
		return false, nil
	}

	presented := identity.BiometricReference(proof)
	return subtle.ConstantTimeCompare([]byte(presented), []byte(voter.BiometricReference)) == 1, nil
}
