package models

type Category string

const (
	CategorySport Category = "SPORT"
	CategoryGame  Category = "GAME"
	CategoryMeal  Category = "MEAL"
	CategoryStudy Category = "STUDY"
	CategoryEtc   Category = "ETC"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySport, CategoryGame, CategoryMeal, CategoryStudy, CategoryEtc:
		return true
	}
	return false
}

type JoinMode string

const (
	JoinModeInstant  JoinMode = "INSTANT"  // auto-accept
	JoinModeApproval JoinMode = "APPROVAL" // host must accept
)

func (m JoinMode) Valid() bool {
	return m == JoinModeInstant || m == JoinModeApproval
}

// Status is the stored lifecycle status of a meeting.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusFull     Status = "FULL"
	StatusStarted  Status = "STARTED"
	StatusEnded    Status = "ENDED"
	StatusCanceled Status = "CANCELED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusFull, StatusStarted, StatusEnded, StatusCanceled:
		return true
	}
	return false
}

// Closed reports whether no new member can be admitted in this status.
func (s Status) Closed() bool {
	switch s {
	case StatusFull, StatusEnded, StatusCanceled:
		return true
	}
	return false
}

// MembershipStatus is the viewer's relationship to one meeting.
type MembershipStatus string

const (
	MembershipNone     MembershipStatus = "NONE"
	MembershipHost     MembershipStatus = "HOST"
	MembershipMember   MembershipStatus = "MEMBER"
	MembershipPending  MembershipStatus = "PENDING"
	MembershipRejected MembershipStatus = "REJECTED"
	MembershipCanceled MembershipStatus = "CANCELED"
)

// ParticipantStatus is the status stored on a participant row.
// ParticipantCanceled marks a row voided by host cancellation and is never
// shown on the roster.
type ParticipantStatus string

const (
	ParticipantPending  ParticipantStatus = "PENDING"
	ParticipantMember   ParticipantStatus = "MEMBER"
	ParticipantRejected ParticipantStatus = "REJECTED"
	ParticipantCanceled ParticipantStatus = "CANCELED"
)

// Membership converts a stored row status to the viewer-scoped status.
func (s ParticipantStatus) Membership() MembershipStatus {
	switch s {
	case ParticipantPending:
		return MembershipPending
	case ParticipantMember:
		return MembershipMember
	case ParticipantRejected:
		return MembershipRejected
	case ParticipantCanceled:
		return MembershipCanceled
	}
	return MembershipNone
}
