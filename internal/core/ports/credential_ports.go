package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
)

type CredentialRepository interface {
	// Insert stores a new credential and returns ErrTokenCollision instead of
	// overwriting an existing one.
	Insert(ctx context.Context, credential *domain.Credential) error
	// Take removes the credential and returns it in one atomic step, or
	// ErrInvalidOrConsumedToken if it is not there.
	Take(ctx context.Context, tokenHash string) (*domain.Credential, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type SweepService interface {
	SweepExpired(ctx context.Context) (int64, error)
}
