package ranking

import (
	"bytes"
	"math"
	"sort"
	"strings"

	"actionmate/geo"
	"actionmate/models"
)

type Mode string

const (
	ModeLatest Mode = "LATEST"
	ModeNear   Mode = "NEAR"
	ModeSoon   Mode = "SOON"
)

// ParseMode accepts any casing and falls back to def for unknown values.
func ParseMode(s string, def Mode) Mode {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeLatest:
		return ModeLatest
	case ModeNear:
		return ModeNear
	case ModeSoon:
		return ModeSoon
	}
	return def
}

// Point is a viewer position. A nil *Point means the position is unknown.
type Point struct {
	Lat float64
	Lng float64
}

// DistanceKm returns the distance from p to the meeting, or +Inf when
// either side lacks coordinates.
func DistanceKm(p *Point, m *models.Meeting) float64 {
	if p == nil || !m.Location.HasCoordinates() {
		return math.Inf(1)
	}
	return geo.Distance(p.Lat, p.Lng, *m.Location.Latitude, *m.Location.Longitude)
}

// Sort orders meetings in place. NEAR without a viewer position behaves
// like LATEST.
func Sort(meetings []*models.Meeting, mode Mode, viewer *Point) {
	switch mode {
	case ModeNear:
		if viewer == nil {
			sortLatest(meetings)
			return
		}
		dist := make(map[*models.Meeting]float64, len(meetings))
		for _, m := range meetings {
			dist[m] = DistanceKm(viewer, m)
		}
		sort.SliceStable(meetings, func(i, j int) bool {
			return dist[meetings[i]] < dist[meetings[j]]
		})
	case ModeSoon:
		sort.SliceStable(meetings, func(i, j int) bool {
			a, b := meetings[i].MeetingTime, meetings[j].MeetingTime
			switch {
			case a.IsZero():
				return false
			case b.IsZero():
				return true
			}
			return a.Before(b)
		})
	default:
		sortLatest(meetings)
	}
}

// sortLatest uses the ObjectID as a monotonic proxy for creation time.
func sortLatest(meetings []*models.Meeting) {
	sort.SliceStable(meetings, func(i, j int) bool {
		return bytes.Compare(meetings[i].ID[:], meetings[j].ID[:]) > 0
	})
}

// Within keeps meetings whose coordinates lie within radiusKm of viewer.
// Meetings without coordinates are dropped.
func Within(meetings []*models.Meeting, viewer Point, radiusKm float64) []*models.Meeting {
	out := make([]*models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		if d := DistanceKm(&viewer, m); d <= radiusKm {
			out = append(out, m)
		}
	}
	return out
}
