package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type ballotRepository struct {
	db *sql.DB
}

func NewBallotRepository(db *sql.DB) ports.BallotRepository {
	return &ballotRepository{
		db: db,
	}
}

func (r *ballotRepository) Append(ctx context.Context, ballot *domain.Ballot) error {
	query := `
		INSERT INTO ballots (ballot_id, candidate_id, cast_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.db.ExecContext(ctx, query, ballot.ID, ballot.CandidateID, ballot.CastAt)
	if err != nil {
		return fmt.Errorf("failed to append ballot: %w", err)
	}
	return nil
}
