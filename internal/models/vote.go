package models

// VoteState is the viewer-scoped vote standing for a single post. Count and
// HasVoted always move together: toggling the flag shifts the count by
// exactly one in the same update.
type VoteState struct {
	Count    int  `json:"count"`
	HasVoted bool `json:"has_voted"`
}
