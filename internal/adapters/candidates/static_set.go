package candidates

import (
	"context"

	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

// StaticSet is the candidate list fixed for the lifetime of the process.
type StaticSet struct {
	ids map[string]struct{}
}

func NewStaticSet(ids []string) ports.CandidateSet {
	set := &StaticSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		set.ids[id] = struct{}{}
	}
	return set
}

func (s *StaticSet) Contains(_ context.Context, candidateID string) (bool, error) {
	_, ok := s.ids[candidateID]
	return ok, nil
}
