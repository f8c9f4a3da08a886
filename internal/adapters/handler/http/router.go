package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/signature"
)

const requestTimeout = 10 * time.Second

type RouterConfig struct {
	Verifier     *signature.Verifier
	MaxBodyBytes int64
	Logger       *zap.Logger
}

func NewHandler(cfg RouterConfig, authHandler *AuthHandler, voteHandler *VoteHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(Signed(cfg.Verifier, cfg.MaxBodyBytes, cfg.Logger))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/verify", authHandler.Verify)
		})

		r.Route("/vote", func(r chi.Router) {
			r.Post("/cast", voteHandler.Cast)
		})
	})

	return r
}
