package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/adapters/biometric"
	"github.com/vncsmyrnk/anonballot/internal/adapters/candidates"
	"github.com/vncsmyrnk/anonballot/internal/adapters/handler/http"
	"github.com/vncsmyrnk/anonballot/internal/adapters/messaging"
	"github.com/vncsmyrnk/anonballot/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/anonballot/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/anonballot/internal/config"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
	"github.com/vncsmyrnk/anonballot/internal/core/services"
	"github.com/vncsmyrnk/anonballot/internal/logger"
	"github.com/vncsmyrnk/anonballot/internal/signature"
)

type repositories struct {
	voters      ports.VoterRepository
	credentials ports.CredentialRepository
	ballots     ports.BallotRepository
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repos.close()

	var publisher ports.BallotPublisher
	if cfg.NATS.URL != "" {
		p, err := messaging.Connect(cfg.NATS.URL, cfg.NATS.Subject, log)
		if err != nil {
			return err
		}
		defer p.Close()
		publisher = p
	}

	if len(cfg.Election.Candidates) == 0 {
		log.Warn("no candidates configured, every ballot will be rejected")
	}

	issuanceService := services.NewIssuanceService(
		repos.voters,
		repos.credentials,
		biometric.NewVerifier(repos.voters),
		cfg.Credential.TTL,
		cfg.Store.Timeout,
		log.Named("issuance"),
	)
	redemptionService := services.NewRedemptionService(
		repos.credentials,
		repos.ballots,
		candidates.NewStaticSet(cfg.Election.Candidates),
		publisher,
		cfg.Store.Timeout,
		log.Named("redemption"),
	)
	sweepService := services.NewSweepService(repos.credentials, cfg.Store.Timeout, log.Named("sweep"))
	go services.RunSweeper(ctx, sweepService, cfg.Sweep.Interval, log.Named("sweep"))

	nonces := signature.NewNonceCache(cfg.Signature.NonceCacheSize, 2*cfg.Signature.MaxSkew)
	verifier := signature.NewVerifier([]byte(cfg.Signature.Secret), cfg.Signature.MaxSkew, nonces)

	handler := http.NewHandler(
		http.RouterConfig{Verifier: verifier, MaxBodyBytes: cfg.Signature.MaxBodyBytes, Logger: log.Named("http")},
		http.NewAuthHandler(issuanceService, log.Named("http")),
		http.NewVoteHandler(redemptionService, log.Named("http")),
	)
	server := &stdhttp.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", server.Addr), zap.String("storage", cfg.Storage.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repositories, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn("using in-memory storage, nothing will survive a restart")
		return &repositories{
			voters:      memory.NewVoterRepository(),
			credentials: memory.NewCredentialRepository(),
			ballots:     memory.NewBallotRepository(),
			close:       func() {},
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := postgres.Open(connectCtx, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	return &repositories{
		voters:      postgres.NewVoterRepository(db),
		credentials: postgres.NewCredentialRepository(db),
		ballots:     postgres.NewBallotRepository(db),
		close: func() {
			db.Close()
		},
	}, nil
}
