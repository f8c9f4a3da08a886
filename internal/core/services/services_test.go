package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vncsmyrnk/anonballot/internal/adapters/biometric"
	"github.com/vncsmyrnk/anonballot/internal/adapters/candidates"
	"github.com/vncsmyrnk/anonballot/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
	"github.com/vncsmyrnk/anonballot/internal/identity"
)

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

type stores struct {
	voters      *memory.VoterRepository
	credentials *memory.CredentialRepository
	ballots     *memory.BallotRepository
}

func newStores(t *testing.T) stores {
	t.Helper()
	s := stores{
		voters:      memory.NewVoterRepository(),
		credentials: memory.NewCredentialRepository(),
		ballots:     memory.NewBallotRepository(),
	}
	registerVoter(t, s.voters, "V1", "P1")
	return s
}

func registerVoter(t *testing.T, voters *memory.VoterRepository, id, proof string) {
	t.Helper()
	require.NoError(t, voters.Register(context.Background(), &domain.Voter{
		ID:                 id,
		Name:               "Voter " + id,
		BiometricReference: identity.BiometricReference(proof),
	}))
}

func (s stores) issuance(t *testing.T) *issuanceService {
	return NewIssuanceService(s.voters, s.credentials, biometric.NewVerifier(s.voters), defaultTTL, 0, zaptest.NewLogger(t)).(*issuanceService)
}

func (s stores) redemption(t *testing.T, publisher ports.BallotPublisher) *redemptionService {
	return NewRedemptionService(s.credentials, s.ballots, candidates.NewStaticSet([]string{"C1", "C9"}), publisher, 0, zaptest.NewLogger(t)).(*redemptionService)
}

type recordingPublisher struct {
	mu      sync.Mutex
	err     error
	ballots []domain.Ballot
}

func (p *recordingPublisher) PublishBallotRecorded(_ context.Context, ballot *domain.Ballot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ballots = append(p.ballots, *ballot)
	return p.err
}

type failingVoters struct {
	*memory.VoterRepository
	getErr  error
	markErr error
}

func (f failingVoters) GetByID(ctx context.Context, id string) (*domain.Voter, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.VoterRepository.GetByID(ctx, id)
}

func (f failingVoters) MarkVoted(ctx context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	return f.VoterRepository.MarkVoted(ctx, id)
}

type failingCredentials struct {
	*memory.CredentialRepository
	insertErr error
	takeErr   error
}

func (f failingCredentials) Insert(ctx context.Context, c *domain.Credential) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	return f.CredentialRepository.Insert(ctx, c)
}

func (f failingCredentials) Take(ctx context.Context, hash string) (*domain.Credential, error) {
	if f.takeErr != nil {
		return nil, f.takeErr
	}
	return f.CredentialRepository.Take(ctx, hash)
}

type failingBallots struct{}

func (failingBallots) Append(context.Context, *domain.Ballot) error {
	return context.DeadlineExceeded
}
