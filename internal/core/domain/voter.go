package domain

// Voter is registered out of band. HasVoted only ever moves from false to true.
type Voter struct {
	ID                 string `json:"voter_id"`
	Name               string `json:"name"`
	BiometricReference string `json:"-"`
	HasVoted           bool   `json:"has_voted"`
}
