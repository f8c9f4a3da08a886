package domain

import "time"

// Credential is a one-time voting token as the store sees it. Only the
// SHA-256 digest of the token is kept; the voter it was issued to is not.
type Credential struct {
	TokenHash string
	ExpiresAt time.Time
}

func (c Credential) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}
