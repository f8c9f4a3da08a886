package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type AuthHandler struct {
	service ports.IssuanceService
	logger  *zap.Logger
}

func NewAuthHandler(service ports.IssuanceService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

type verifyRequest struct {
	VoterID        string `json:"voterId"`
	BiometricProof string `json:"biometricProof"`
}

type verifyResponse struct {
	TokenID string `json:"tokenId"`
}

// Verify godoc
// @Summary      Verifies a voter and issues a voting token
// @Description  Checks the biometric proof, marks the voter as having voted and returns a one-time token. A voter gets at most one token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      401
// @Failure      403
// @Failure      503
// @Router       /auth/verify [post]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest)
		return
	}
	if req.VoterID == "" || req.BiometricProof == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest)
		return
	}

	token, err := h.service.Issue(r.Context(), ports.IssueInput{
		VoterID:        req.VoterID,
		BiometricProof: req.BiometricProof,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownVoter):
			writeError(w, http.StatusUnauthorized, codeUnknownVoter)
		case errors.Is(err, domain.ErrIdentityMismatch):
			writeError(w, http.StatusForbidden, codeIdentityMismatch)
		case errors.Is(err, domain.ErrAlreadyVoted):
			writeError(w, http.StatusForbidden, codeAlreadyVoted)
		case errors.Is(err, domain.ErrStoreUnavailable):
			writeError(w, http.StatusServiceUnavailable, codeStoreUnavailable)
		default:
			h.logger.Error("failed to issue token", zap.Error(err))
			writeError(w, http.StatusInternalServerError, codeInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{TokenID: token})
}
