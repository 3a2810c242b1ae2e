package services

import (
	"actionmate/geo"
	"actionmate/membership"
	"actionmate/models"
	"actionmate/ranking"
	"actionmate/status"
)

// MeetingView is a meeting as one viewer sees it.
type MeetingView struct {
	*models.Meeting
	MyState      models.MyState `json:"myState"`
	Tokens       status.Tokens  `json:"tokens"`
	DistanceKm   *float64       `json:"distanceKm,omitempty"`
	DistanceText string         `json:"distanceText,omitempty"`
}

type JoinView struct {
	Post             MeetingView             `json:"post"`
	MembershipStatus models.MembershipStatus `json:"membershipStatus"`
}

func newView(m *models.Meeting, viewerID string) MeetingView {
	my := membership.Project(m, viewerID)
	return viewWithState(m, my)
}

func viewWithState(m *models.Meeting, my models.MyState) MeetingView {
	return MeetingView{
		Meeting: m,
		MyState: my,
		Tokens:  status.Derive(m, my),
	}
}

func (v *MeetingView) withDistance(p *ranking.Point) {
	if p == nil || !v.Location.HasCoordinates() {
		return
	}
	km := ranking.DistanceKm(p, v.Meeting)
	v.DistanceKm = &km
	v.DistanceText = geo.FormatDistance(km)
}

func newViews(meetings []*models.Meeting, viewerID string, p *ranking.Point) []MeetingView {
	out := make([]MeetingView, 0, len(meetings))
	for _, m := range meetings {
		v := newView(m, viewerID)
		v.withDistance(p)
		out = append(out, v)
	}
	return out
}
