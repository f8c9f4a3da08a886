package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type redemptionService struct {
	credentials  ports.CredentialRepository
	ballots      ports.BallotRepository
	candidates   ports.CandidateSet
	publisher    ports.BallotPublisher
	storeTimeout time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewRedemptionService builds the redemption flow. publisher may be nil.
func NewRedemptionService(
	credentials ports.CredentialRepository,
	ballots ports.BallotRepository,
	candidates ports.CandidateSet,
	publisher ports.BallotPublisher,
	storeTimeout time.Duration,
	logger *zap.Logger,
) ports.RedemptionService {
	return &redemptionService{
		credentials:  credentials,
		ballots:      ballots,
		candidates:   candidates,
		publisher:    publisher,
		storeTimeout: storeTimeout,
		logger:       logger,
		now:          time.Now,
	}
}

// Redeem consumes the token before anything else is checked, so a token
// presented once is gone whatever the outcome.
func (s *redemptionService) Redeem(ctx context.Context, input ports.RedeemInput) (uuid.UUID, error) {
	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	credential, err := s.credentials.Take(storeCtx, HashToken(input.TokenID))
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOrConsumedToken) {
			return uuid.Nil, err
		}
		return uuid.Nil, unavailable("failed to take credential", err)
	}

	now := s.now()
	if credential.ExpiredAt(now) {
		return uuid.Nil, domain.ErrExpiredToken
	}

	known, err := s.candidates.Contains(ctx, input.CandidateID)
	if err != nil {
		return uuid.Nil, unavailable("failed to check candidate", err)
	}
	if !known {
		return uuid.Nil, domain.ErrUnknownCandidate
	}

	ballot := &domain.Ballot{
		ID:          uuid.New(),
		CandidateID: input.CandidateID,
		CastAt:      now.UTC().Truncate(time.Second),
	}

	storeCtx, cancel = storeContext(ctx, s.storeTimeout)
	err = s.ballots.Append(storeCtx, ballot)
	cancel()
	if err != nil {
		s.logger.Error("credential consumed but ballot was not recorded", zap.Error(err))
		return uuid.Nil, unavailable("failed to append ballot", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishBallotRecorded(ctx, ballot); err != nil {
			s.logger.Warn("failed to publish ballot event", zap.String("ballot_id", ballot.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("ballot recorded", zap.String("ballot_id", ballot.ID.String()))
	return ballot.ID, nil
}
