package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type credentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) ports.CredentialRepository {
	return &credentialRepository{
		db: db,
	}
}

func (r *credentialRepository) Insert(ctx context.Context, credential *domain.Credential) error {
	query := `INSERT INTO credentials (token_hash, expires_at) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, credential.TokenHash, credential.ExpiresAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrTokenCollision
		}
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}

// Take deletes the credential and returns what was deleted. Concurrent
// callers race on the row lock; the losers find nothing.
func (r *credentialRepository) Take(ctx context.Context, tokenHash string) (*domain.Credential, error) {
	query := `DELETE FROM credentials WHERE token_hash = $1 RETURNING expires_at`

	credential := &domain.Credential{TokenHash: tokenHash}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(&credential.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidOrConsumedToken
		}
		return nil, fmt.Errorf("failed to take credential: %w", err)
	}
	return credential, nil
}

func (r *credentialRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired credentials: %w", err)
	}
	return res.RowsAffected()
}
