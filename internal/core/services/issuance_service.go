package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type issuanceService struct {
	voters       ports.VoterRepository
	credentials  ports.CredentialRepository
	oracle       ports.BiometricOracle
	ttl          time.Duration
	storeTimeout time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewIssuanceService(
	voters ports.VoterRepository,
	credentials ports.CredentialRepository,
	oracle ports.BiometricOracle,
	ttl time.Duration,
	storeTimeout time.Duration,
	logger *zap.Logger,
) ports.IssuanceService {
	return &issuanceService{
		voters:       voters,
		credentials:  credentials,
		oracle:       oracle,
		ttl:          ttl,
		storeTimeout: storeTimeout,
		logger:       logger,
		now:          time.Now,
	}
}

// Issue verifies the voter and hands out a single credential. The voter id
// and the token never appear in the same log line or record.
func (s *issuanceService) Issue(ctx context.Context, input ports.IssueInput) (string, error) {
	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	_, err := s.voters.GetByID(storeCtx, input.VoterID)
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrUnknownVoter) {
			return "", err
		}
		return "", unavailable("failed to get voter", err)
	}

	ok, err := s.oracle.Verify(ctx, input.VoterID, input.BiometricProof)
	if err != nil {
		return "", unavailable("failed to verify identity", err)
	}
	if !ok {
		return "", domain.ErrIdentityMismatch
	}

	storeCtx, cancel = storeContext(ctx, s.storeTimeout)
	err = s.voters.MarkVoted(storeCtx, input.VoterID)
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyVoted) || errors.Is(err, domain.ErrUnknownVoter) {
			return "", err
		}
		return "", unavailable("failed to mark voter", err)
	}

	token, err := generateToken()
	if err != nil {
		s.logger.Error("voter marked but token generation failed", zap.String("voter_id", input.VoterID), zap.Error(err))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	credential := &domain.Credential{
		TokenHash: HashToken(token),
		ExpiresAt: s.now().Add(s.ttl),
	}

	storeCtx, cancel = storeContext(ctx, s.storeTimeout)
	err = s.credentials.Insert(storeCtx, credential)
	cancel()
	if err != nil {
		s.logger.Error("voter marked but credential was not stored", zap.String("voter_id", input.VoterID), zap.Error(err))
		if errors.Is(err, domain.ErrTokenCollision) {
			return "", fmt.Errorf("failed to store credential: %w", err)
		}
		return "", unavailable("failed to store credential", err)
	}

	s.logger.Info("credential issued")
	return token, nil
}
