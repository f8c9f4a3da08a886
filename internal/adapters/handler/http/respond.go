package http

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in {"error": "..."} bodies.
const (
	codeInvalidRequest   = "invalid_request"
	codeUnknownVoter     = "unknown_voter"
	codeIdentityMismatch = "identity_mismatch"
	codeAlreadyVoted     = "already_voted"
	codeInvalidToken     = "invalid_token"
	codeUnknownCandidate = "unknown_candidate"
	codeSignatureInvalid = "signature_invalid"
	codeStoreUnavailable = "store_unavailable"
	codeInternal         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}
