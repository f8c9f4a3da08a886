package domain

import "errors"

var (
	ErrUnknownVoter           = errors.New("unknown voter")
	ErrIdentityMismatch       = errors.New("identity mismatch")
	ErrAlreadyVoted           = errors.New("voter has already voted")
	ErrVoterExists            = errors.New("voter already registered")
	ErrInvalidOrConsumedToken = errors.New("invalid or consumed token")
	ErrExpiredToken           = errors.New("token expired")
	ErrUnknownCandidate       = errors.New("unknown candidate")
	ErrSignatureInvalid       = errors.New("request signature invalid")
	ErrStoreUnavailable       = errors.New("store unavailable")
	ErrTokenCollision         = errors.New("token collision")
)

// IsTokenRejection reports whether err is one of the token failures that
// callers must not be able to tell apart.
func IsTokenRejection(err error) bool {
	return errors.Is(err, ErrInvalidOrConsumedToken) || errors.Is(err, ErrExpiredToken)
}
