package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type CredentialRepository struct {
	mu          sync.Mutex
	credentials map[string]time.Time
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{credentials: make(map[string]time.Time)}
}

var _ ports.CredentialRepository = (*CredentialRepository)(nil)

func (r *CredentialRepository) Insert(ctx context.Context, credential *domain.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.credentials[credential.TokenHash]; ok {
		return domain.ErrTokenCollision
	}
	r.credentials[credential.TokenHash] = credential.ExpiresAt
	return nil
}

func (r *CredentialRepository) Take(ctx context.Context, tokenHash string) (*domain.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	expiresAt, ok := r.credentials[tokenHash]
	if !ok {
		return nil, domain.ErrInvalidOrConsumedToken
	}
	delete(r.credentials, tokenHash)
	return &domain.Credential{TokenHash: tokenHash, ExpiresAt: expiresAt}, nil
}

func (r *CredentialRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for hash, expiresAt := range r.credentials {
		if expiresAt.Before(now) {
			delete(r.credentials, hash)
			deleted++
		}
	}
	return deleted, nil
}

// Len reports how many credentials are outstanding.
func (r *CredentialRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.credentials)
}
