package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type voterRepository struct {
	db *sql.DB
}

func NewVoterRepository(db *sql.DB) ports.VoterRepository {
	return &voterRepository{
		db: db,
	}
}

func (r *voterRepository) GetByID(ctx context.Context, voterID string) (*domain.Voter, error) {
	query := `SELECT voter_id, name, biometric_reference, has_voted FROM voters WHERE voter_id = $1`

	voter := &domain.Voter{}
	err := r.db.QueryRowContext(ctx, query, voterID).Scan(
		&voter.ID,
		&voter.Name,
		&voter.BiometricReference,
		&voter.HasVoted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnknownVoter
		}
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}
	return voter, nil
}

// MarkVoted flips has_voted in a single conditional update. Only one caller
// can ever see a row affected.
func (r *voterRepository) MarkVoted(ctx context.Context, voterID string) error {
	query := `UPDATE voters SET has_voted = TRUE WHERE voter_id = $1 AND has_voted = FALSE`

	res, err := r.db.ExecContext(ctx, query, voterID)
	if err != nil {
		return fmt.Errorf("failed to mark voter: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark voter: %w", err)
	}
	if affected == 1 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM voters WHERE voter_id = $1`, voterID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUnknownVoter
		}
		return fmt.Errorf("failed to check voter: %w", err)
	}
	return domain.ErrAlreadyVoted
}

func (r *voterRepository) Register(ctx context.Context, voter *domain.Voter) error {
	query := `
		INSERT INTO voters (voter_id, name, biometric_reference, has_voted)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db.ExecContext(ctx, query, voter.ID, voter.Name, voter.BiometricReference, voter.HasVoted)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVoterExists
		}
		return fmt.Errorf("failed to register voter: %w", err)
	}
	return nil
}
