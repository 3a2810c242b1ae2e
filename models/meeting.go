package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Capacity struct {
	Current int `bson:"current" json:"current"`
	Total   int `bson:"total" json:"total"`
}

// Valid holds the invariant 0 <= current <= total and total > 0.
func (c Capacity) Valid() bool {
	return c.Total > 0 && c.Current >= 0 && c.Current <= c.Total
}

// Remaining is the number of free seats.
func (c Capacity) Remaining() int {
	if c.Current >= c.Total {
		return 0
	}
	return c.Total - c.Current
}

type Meeting struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category        Category           `bson:"category" json:"category"`
	Title           string             `bson:"title" json:"title"`
	Content         string             `bson:"content" json:"content"`
	MeetingTime     time.Time          `bson:"meetingTime" json:"meetingTime"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	Location        Location           `bson:"location" json:"location"`
	Capacity        Capacity           `bson:"capacity" json:"capacity"`
	JoinMode        JoinMode           `bson:"joinMode" json:"joinMode"`
	Status          Status             `bson:"status" json:"status"`
	Host            Host               `bson:"host" json:"host"`
	Conditions      string             `bson:"conditions,omitempty" json:"conditions,omitempty"`
	Participants    []Participant      `bson:"participants" json:"-"`
	CreatedAt       int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       int64              `bson:"updatedAt" json:"updatedAt"`
	Version         int64              `bson:"version" json:"-"`
}

// Clone returns a deep copy so callers never share participant slices or
// coordinate pointers with the store.
func (m *Meeting) Clone() *Meeting {
	if m == nil {
		return nil
	}
	c := *m
	if m.Participants != nil {
		c.Participants = make([]Participant, len(m.Participants))
		copy(c.Participants, m.Participants)
	}
	if m.Location.Latitude != nil {
		lat := *m.Location.Latitude
		c.Location.Latitude = &lat
	}
	if m.Location.Longitude != nil {
		lng := *m.Location.Longitude
		c.Location.Longitude = &lng
	}
	return &c
}

func (m *Meeting) IsHost(userID string) bool {
	return userID != "" && m.Host.ID == userID
}

// Participant returns the row for userID, or nil.
func (m *Meeting) Participant(userID string) *Participant {
	for i := range m.Participants {
		if m.Participants[i].UserID == userID {
			return &m.Participants[i]
		}
	}
	return nil
}

// RemoveParticipant drops the row for userID and reports whether one existed.
func (m *Meeting) RemoveParticipant(userID string) bool {
	for i := range m.Participants {
		if m.Participants[i].UserID == userID {
			m.Participants = append(m.Participants[:i], m.Participants[i+1:]...)
			return true
		}
	}
	return false
}

// Roster returns the visible participant rows in application order.
func (m *Meeting) Roster() []Participant {
	out := make([]Participant, 0, len(m.Participants))
	for _, p := range m.Participants {
		if p.OnRoster() {
			out = append(out, p)
		}
	}
	return out
}

// SyncFullStatus moves OPEN to FULL when every seat is taken and FULL back
// to OPEN when a seat frees up. Other statuses are left alone.
func (m *Meeting) SyncFullStatus() {
	switch {
	case m.Status == StatusOpen && m.Capacity.Current >= m.Capacity.Total:
		m.Status = StatusFull
	case m.Status == StatusFull && m.Capacity.Current < m.Capacity.Total:
		m.Status = StatusOpen
	}
}

// EndTime is the planned end of the meeting. A zero duration counts as
// DefaultDuration.
func (m *Meeting) EndTime() time.Time {
	d := m.DurationMinutes
	if d <= 0 {
		d = DefaultDurationMinutes
	}
	return m.MeetingTime.Add(time.Duration(d) * time.Minute)
}

const DefaultDurationMinutes = 120
