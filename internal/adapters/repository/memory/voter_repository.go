// Package memory holds process-local repositories. They back tests and the
// "memory" storage driver; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type VoterRepository struct {
	mu     sync.Mutex
	voters map[string]domain.Voter
}

func NewVoterRepository() *VoterRepository {
	return &VoterRepository{voters: make(map[string]domain.Voter)}
}

var _ ports.VoterRepository = (*VoterRepository)(nil)

func (r *VoterRepository) GetByID(ctx context.Context, voterID string) (*domain.Voter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	voter, ok := r.voters[voterID]
	if !ok {
		return nil, domain.ErrUnknownVoter
	}
	return &voter, nil
}

func (r *VoterRepository) MarkVoted(ctx context.Context, voterID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	voter, ok := r.voters[voterID]
	if !ok {
		return domain.ErrUnknownVoter
	}
	if voter.HasVoted {
		return domain.ErrAlreadyVoted
	}
	voter.HasVoted = true
	r.voters[voterID] = voter
	return nil
}

func (r *VoterRepository) Register(ctx context.Context, voter *domain.Voter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.voters[voter.ID]; ok {
		return domain.ErrVoterExists
	}
	r.voters[voter.ID] = *voter
	return nil
}
