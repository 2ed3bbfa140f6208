package models

// TargetAll addresses a broadcast to every rank.
const TargetAll = "ALL"

// Broadcast is an admin message shown to a rank cohort. Active is a pointer
// because absent means active in documents written by older tooling.
type Broadcast struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Message   string `json:"message"`
	Target    string `json:"target"`
	Active    *bool  `json:"active,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// IsActive reports whether the broadcast should be shown.
func (b *Broadcast) IsActive() bool {
	return b.Active == nil || *b.Active
}

// VisibleTo reports whether the broadcast targets the given rank. An empty
// rank matches everything, mirroring the unauthenticated listing.
func (b *Broadcast) VisibleTo(rank string) bool {
	if rank == "" {
		return true
	}
	return b.Target == TargetAll || b.Target == rank
}
