package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/anonballot/internal/core/domain"
	"github.com/vncsmyrnk/anonballot/internal/core/ports"
)

type VoteHandler struct {
	service ports.RedemptionService
	logger  *zap.Logger
}

func NewVoteHandler(service ports.RedemptionService, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		logger:  logger,
	}
}

type castRequest struct {
	TokenID     string `json:"tokenId"`
	CandidateID string `json:"candidateId"`
}

type castResponse struct {
	BallotID uuid.UUID `json:"ballotId"`
}

// Cast godoc
// @Summary      Casts an anonymous ballot
// @Description  Redeems a one-time token for a ballot. Invalid, consumed and expired tokens get the same answer.
// @Tags         vote
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      403
// @Failure      503
// @Router       /vote/cast [post]
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req castRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest)
		return
	}
	if req.TokenID == "" || req.CandidateID == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest)
		return
	}

	ballotID, err := h.service.Redeem(r.Context(), ports.RedeemInput{
		TokenID:     req.TokenID,
		CandidateID: req.CandidateID,
	})
	if err != nil {
		switch {
		case domain.IsTokenRejection(err):
			writeError(w, http.StatusForbidden, codeInvalidToken)
		case errors.Is(err, domain.ErrUnknownCandidate):
			writeError(w, http.StatusBadRequest, codeUnknownCandidate)
		case errors.Is(err, domain.ErrStoreUnavailable):
			writeError(w, http.StatusServiceUnavailable, codeStoreUnavailable)
		default:
			h.logger.Error("failed to cast ballot", zap.Error(err))
			writeError(w, http.StatusInternalServerError, codeInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, castResponse{BallotID: ballotID})
}
