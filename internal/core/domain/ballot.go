package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ballot is an anonymous vote record. It must never gain a field that points
// back to a voter or a credential.
type Ballot struct {
	ID          uuid.UUID `json:"ballot_id"`
	CandidateID string    `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}
