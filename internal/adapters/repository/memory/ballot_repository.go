package memory

import (
	"context"
	"sync"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type BallotRepository struct {
	mu      sync.RWMutex
	ballots []domain.Ballot
}

func NewBallotRepository() *BallotRepository {
	return &BallotRepository{}
}

var _ ports.BallotRepository = (*BallotRepository)(nil)

func (r *BallotRepository) Append(ctx context.Context, ballot *domain.Ballot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ballots = append(r.ballots, *ballot)
	return nil
}

// All returns a copy of the recorded ballots.
func (r *BallotRepository) All() []domain.Ballot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Ballot, len(r.ballots))
	copy(out, r.ballots)
	return out
}
