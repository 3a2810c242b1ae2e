package ranking

import (
	"math"
	"testing"
	"time"

	"actionmate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func at(title string, lat, lng float64) *models.Meeting {
	return &models.Meeting{
		ID:       primitive.NewObjectID(),
		Title:    title,
		Location: models.Location{Name: title, Latitude: &lat, Longitude: &lng},
		Status:   models.StatusOpen,
		Capacity: models.Capacity{Current: 1, Total: 4},
	}
}

func startingIn(title string, minutes int) *models.Meeting {
	return &models.Meeting{
		ID:          primitive.NewObjectID(),
		Title:       title,
		MeetingTime: now.Add(time.Duration(minutes) * time.Minute),
		Location:    models.Location{Name: title + " 장소"},
		Status:      models.StatusOpen,
		Capacity:    models.Capacity{Current: 1, Total: 4},
	}
}

func titles(meetings []*models.Meeting) []string {
	out := make([]string, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, m.Title)
	}
	return out
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeNear, ParseMode("near", ModeLatest))
	assert.Equal(t, ModeSoon, ParseMode(" SOON ", ModeLatest))
	assert.Equal(t, ModeLatest, ParseMode("", ModeLatest))
	assert.Equal(t, ModeNear, ParseMode("bogus", ModeNear))
}

func TestSort_Near(t *testing.T) {
	viewer := &Point{Lat: 37.5665, Lng: 126.9780}
	far := at("1.2km", viewer.Lat+0.0108, viewer.Lng)
	near := at("0.3km", viewer.Lat+0.0027, viewer.Lng)
	mid := at("0.9km", viewer.Lat+0.0081, viewer.Lng)
	nowhere := &models.Meeting{ID: primitive.NewObjectID(), Title: "no coords"}

	list := []*models.Meeting{far, nowhere, near, mid}
	Sort(list, ModeNear, viewer)

	assert.Equal(t, []string{"0.3km", "0.9km", "1.2km", "no coords"}, titles(list))
	assert.InDelta(t, 0.3, DistanceKm(viewer, near), 0.01)
	assert.True(t, math.IsInf(DistanceKm(viewer, nowhere), 1))
}

func TestSort_NearWithoutViewerFallsBackToLatest(t *testing.T) {
	older := at("older", 37.5, 127.0)
	newer := at("newer", 37.6, 127.0)
	list := []*models.Meeting{older, newer}

	Sort(list, ModeNear, nil)
	assert.Equal(t, []string{"newer", "older"}, titles(list))
}

func TestSort_Soon(t *testing.T) {
	undated := &models.Meeting{ID: primitive.NewObjectID(), Title: "undated"}
	list := []*models.Meeting{startingIn("later", 90), undated, startingIn("sooner", 15)}

	Sort(list, ModeSoon, nil)
	assert.Equal(t, []string{"sooner", "later", "undated"}, titles(list))
}

func TestSort_Latest(t *testing.T) {
	a := startingIn("a", 10)
	b := startingIn("b", 20)
	c := startingIn("c", 30)
	list := []*models.Meeting{b, a, c}

	Sort(list, ModeLatest, nil)
	assert.Equal(t, []string{"c", "b", "a"}, titles(list))
}

func TestWithin(t *testing.T) {
	viewer := Point{Lat: 37.5665, Lng: 126.9780}
	inside := at("inside", viewer.Lat+0.0081, viewer.Lng)
	outside := at("outside", viewer.Lat+0.1, viewer.Lng)
	nowhere := &models.Meeting{ID: primitive.NewObjectID(), Title: "no coords"}

	got := Within([]*models.Meeting{inside, outside, nowhere}, viewer, 5)
	assert.Equal(t, []string{"inside"}, titles(got))
}

func TestHot(t *testing.T) {
	full := startingIn("full", 30)
	full.Capacity = models.Capacity{Current: 4, Total: 4}
	canceled := startingIn("canceled", 20)
	canceled.Status = models.StatusCanceled
	started := startingIn("past", -5)
	started.Status = models.StatusStarted

	meetings := []*models.Meeting{
		startingIn("45", 45),
		startingIn("10", 10),
		startingIn("200", 200),
		full,
		canceled,
		started,
	}

	items := Hot(meetings, now, HotOptions{})
	require.Len(t, items, 2)
	assert.Equal(t, "10", items[0].Title)
	assert.Equal(t, "10분 남음", items[0].Badge)
	assert.Equal(t, 10, items[0].MinutesLeft)
	assert.Equal(t, "45", items[1].Title)
	assert.Equal(t, "hot-"+items[1].MeetingID, items[1].ID)
	assert.Equal(t, "45 장소", items[1].Place)
	assert.Equal(t, 1, items[1].CapacityJoined)
	assert.Equal(t, 4, items[1].CapacityTotal)
}

func TestHot_LimitAndWindow(t *testing.T) {
	meetings := []*models.Meeting{
		startingIn("c", 50),
		startingIn("a", 0),
		startingIn("b", 25),
	}

	items := Hot(meetings, now, HotOptions{Limit: 2})
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Title)
	assert.Equal(t, "b", items[1].Title)

	items = Hot(meetings, now, HotOptions{WithinMinutes: 30})
	assert.Len(t, items, 2)
}

func TestMinutesUntil(t *testing.T) {
	assert.Equal(t, 44, MinutesUntil(now.Add(44*time.Minute+59*time.Second), now))
	assert.Equal(t, 0, MinutesUntil(now, now))
	assert.Equal(t, -1, MinutesUntil(now.Add(-30*time.Second), now))
}

func TestCountdownLabel(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0분 남음"},
		{59, "59분 남음"},
		{60, "1시간 남음"},
		{75, "1시간 15분 남음"},
		{180, "3시간 남음"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountdownLabel(tt.minutes))
	}
}
