package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type sweepService struct {
	credentials  ports.CredentialRepository
	storeTimeout time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewSweepService(credentials ports.CredentialRepository, storeTimeout time.Duration, logger *zap.Logger) ports.SweepService {
	return &sweepService{
		credentials:  credentials,
		storeTimeout: storeTimeout,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *sweepService) SweepExpired(ctx context.Context) (int64, error) {
	storeCtx, cancel := storeContext(ctx, s.storeTimeout)
	defer cancel()

	deleted, err := s.credentials.DeleteExpired(storeCtx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired credentials: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("expired credentials swept", zap.Int64("count", deleted))
	}
	return deleted, nil
}

// RunSweeper sweeps on every tick until ctx is done. Failures are logged and
// retried on the next tick.
func RunSweeper(ctx context.Context, sweeper ports.SweepService, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sweeper.SweepExpired(ctx); err != nil {
				logger.Warn("credential sweep failed", zap.Error(err))
			}
		}
	}
}
