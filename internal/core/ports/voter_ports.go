package ports

import (
	"context"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
)

type VoterRepository interface {
	GetByID(ctx context.Context, voterID string) (*domain.Voter, error)
	// MarkVoted flips has_voted from false to true in one atomic step. Exactly
	// one concurrent caller per voter succeeds; the rest get ErrAlreadyVoted.
	MarkVoted(ctx context.Context, voterID string) error
	Register(ctx context.Context, voter *domain.Voter) error
}

// BiometricOracle decides whether proof belongs to the voter. Matching itself
// lives outside this service.
type BiometricOracle interface {
	Verify(ctx context.Context, voterID string, proof string) (bool, error)
}

type IssueInput struct {
	VoterID        string
	BiometricProof string
}

type IssuanceService interface {
	Issue(ctx context.Context, input IssueInput) (string, error)
}
