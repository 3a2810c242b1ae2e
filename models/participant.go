package models

type Participant struct {
	UserID    string            `bson:"userId" json:"userId"`
	Nickname  string            `bson:"nickname" json:"nickname"`
	Status    ParticipantStatus `bson:"status" json:"status"`
	AppliedAt int64             `bson:"appliedAt" json:"appliedAt"`
	DecidedAt int64             `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
}

// OnRoster reports whether the row is part of the visible roster.
func (p Participant) OnRoster() bool {
	switch p.Status {
	case ParticipantPending, ParticipantMember, ParticipantRejected:
		return true
	}
	return false
}
