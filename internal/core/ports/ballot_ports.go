package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/anonballot/internal/core/domain"
)

type BallotRepository interface {
	Append(ctx context.Context, ballot *domain.Ballot) error
}

type CandidateSet interface {
	Contains(ctx context.Context, candidateID string) (bool, error)
}

// BallotPublisher announces recorded ballots to downstream consumers.
type BallotPublisher interface {
	PublishBallotRecorded(ctx context.Context, ballot *domain.Ballot) error
}

type RedeemInput struct {
	TokenID     string
	CandidateID string
}

type RedemptionService interface {
	Redeem(ctx context.Context, input RedeemInput) (uuid.UUID, error)
}
