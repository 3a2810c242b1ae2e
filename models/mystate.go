package models

// Reasons attached to MyState when joining is not possible.
const (
	ReasonCapacityFull    = "capacity full"
	ReasonMeetingCanceled = "meeting canceled"
	ReasonMeetingEnded    = "meeting ended"
	ReasonLoginRequired   = "login required"
)

// MyState is the viewer-scoped relationship to one meeting. It is computed
// per request and never stored.
type MyState struct {
	MembershipStatus MembershipStatus `json:"membershipStatus"`
	CanJoin          bool             `json:"canJoin"`
	Reason           string           `json:"reason,omitempty"`
}
