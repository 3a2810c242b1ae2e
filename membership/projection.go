package membership

import (
	"actionmate/models"
	"actionmate/status"
)

// Of returns the viewer's membership status for m.
func Of(m *models.Meeting, viewerID string) models.MembershipStatus {
	if viewerID == "" {
		return models.MembershipNone
	}
	if m.IsHost(viewerID) {
		return models.MembershipHost
	}
	if p := m.Participant(viewerID); p != nil {
		return p.Status.Membership()
	}
	return models.MembershipNone
}

// Project computes MyState for viewerID. It is recomputed on every read and
// never cached across viewers.
func Project(m *models.Meeting, viewerID string) models.MyState {
	state := models.MyState{MembershipStatus: Of(m, viewerID)}
	if state.MembershipStatus != models.MembershipNone {
		return state
	}
	if viewerID == "" {
		state.Reason = models.ReasonLoginRequired
		return state
	}

	switch status.Effective(m) {
	case models.StatusOpen, models.StatusStarted:
		state.CanJoin = true
	case models.StatusFull:
		state.Reason = models.ReasonCapacityFull
	case models.StatusCanceled:
		state.Reason = models.ReasonMeetingCanceled
	case models.StatusEnded:
		state.Reason = models.ReasonMeetingEnded
	}
	return state
}
