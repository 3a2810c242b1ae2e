package ranking

import (
	"fmt"
	"math"
	"sort"
	"time"

	"actionmate/models"
	"actionmate/status"
)

const (
	DefaultHotWindowMinutes = 180
	DefaultHotLimit         = 10
)

type HotOptions struct {
	Limit         int
	WithinMinutes int
}

// HotItem is one "closing soon" entry.
type HotItem struct {
	ID             string `json:"id"`
	MeetingID      string `json:"meetingId"`
	Badge          string `json:"badge"`
	Title          string `json:"title"`
	Place          string `json:"place"`
	CapacityJoined int    `json:"capacityJoined"`
	CapacityTotal  int    `json:"capacityTotal"`
	MinutesLeft    int    `json:"minutesLeft"`
}

// Hot returns open meetings starting within the window, soonest first.
func Hot(meetings []*models.Meeting, now time.Time, opts HotOptions) []HotItem {
	window := opts.WithinMinutes
	if window <= 0 {
		window = DefaultHotWindowMinutes
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultHotLimit
	}

	type candidate struct {
		m       *models.Meeting
		minutes int
	}
	var picked []candidate
	for _, m := range meetings {
		if status.Effective(m) != models.StatusOpen || m.MeetingTime.IsZero() {
			continue
		}
		minutes := MinutesUntil(m.MeetingTime, now)
		if minutes < 0 || minutes > window {
			continue
		}
		picked = append(picked, candidate{m: m, minutes: minutes})
	}

	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].minutes < picked[j].minutes
	})
	if len(picked) > limit {
		picked = picked[:limit]
	}

	items := make([]HotItem, 0, len(picked))
	for _, c := range picked {
		items = append(items, HotItem{
			ID:             "hot-" + c.m.ID.Hex(),
			MeetingID:      c.m.ID.Hex(),
			Badge:          CountdownLabel(c.minutes),
			Title:          c.m.Title,
			Place:          c.m.Location.Name,
			CapacityJoined: c.m.Capacity.Current,
			CapacityTotal:  c.m.Capacity.Total,
			MinutesLeft:    c.minutes,
		})
	}
	return items
}

// MinutesUntil is the whole number of minutes from now until t, rounded
// down. Past times are negative.
func MinutesUntil(t, now time.Time) int {
	return int(math.Floor(t.Sub(now).Minutes()))
}

// CountdownLabel formats minutes as "N분 남음", "H시간 남음" or "H시간 M분 남음".
func CountdownLabel(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d분 남음", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%d시간 남음", h)
	}
	return fmt.Sprintf("%d시간 %d분 남음", h, m)
}
