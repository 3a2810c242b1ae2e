package models

import (
	"errors"
	"testing"
	"time"

	"actionmate/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func validParams() CreateParams {
	return CreateParams{
		Category:      CategoryGame,
		Title:         "  보드게임 한판  ",
		MeetingTime:   now.Add(time.Hour),
		Location:      Location{Name: "홍대입구"},
		CapacityTotal: 4,
		JoinMode:      JoinModeInstant,
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var appErr *apperr.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, apperr.CodeInvalidArgument, appErr.Code)
	return appErr.Fields
}

func TestCreateParams_Validate(t *testing.T) {
	p := validParams()
	require.NoError(t, p.Validate())
	assert.Equal(t, "보드게임 한판", p.Title)

	lat := 37.55
	tests := []struct {
		name   string
		mutate func(*CreateParams)
		field  string
	}{
		{"missing title", func(p *CreateParams) { p.Title = "   " }, "title"},
		{"bad category", func(p *CreateParams) { p.Category = "PARTY" }, "category"},
		{"zero capacity", func(p *CreateParams) { p.CapacityTotal = 0 }, "capacityTotal"},
		{"missing time", func(p *CreateParams) { p.MeetingTime = time.Time{} }, "meetingTime"},
		{"missing place", func(p *CreateParams) { p.Location.Name = "" }, "location.name"},
		{"half coordinates", func(p *CreateParams) { p.Location.Latitude = &lat }, "location"},
		{"approval needs conditions", func(p *CreateParams) { p.JoinMode = JoinModeApproval }, "conditions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			assert.Contains(t, fieldsOf(t, p.Validate()), tt.field)
		})
	}
}

func TestNewMeeting(t *testing.T) {
	p := validParams()
	p.JoinMode = JoinModeInstant
	p.Conditions = "ignored"
	m := NewMeeting(p, Host{ID: "h"}, now)

	assert.Equal(t, StatusOpen, m.Status)
	assert.Equal(t, Capacity{Current: 1, Total: 4}, m.Capacity)
	assert.Empty(t, m.Participants)
	assert.NotNil(t, m.Participants)
	assert.Empty(t, m.Conditions)
	assert.Equal(t, now.Unix(), m.CreatedAt)
}

func TestPatch_Apply(t *testing.T) {
	base := func() *Meeting {
		return &Meeting{
			Title:      "원래 제목",
			Capacity:   Capacity{Current: 3, Total: 5},
			JoinMode:   JoinModeApproval,
			Conditions: "초보 환영",
			Status:     StatusOpen,
			Host:       Host{ID: "h"},
		}
	}
	ptr := func(v int) *int { return &v }
	str := func(v string) *string { return &v }
	mode := func(v JoinMode) *JoinMode { return &v }

	t.Run("merges only given fields", func(t *testing.T) {
		m := base()
		require.NoError(t, (&Patch{Title: str("새 제목")}).Apply(m, now))
		assert.Equal(t, "새 제목", m.Title)
		assert.Equal(t, "초보 환영", m.Conditions)
		assert.Equal(t, Capacity{Current: 3, Total: 5}, m.Capacity)
		assert.Equal(t, now.Unix(), m.UpdatedAt)
	})

	t.Run("total below current", func(t *testing.T) {
		m := base()
		err := (&Patch{CapacityTotal: ptr(2)}).Apply(m, now)
		assert.Contains(t, fieldsOf(t, err), "capacityTotal")
		assert.Equal(t, 5, m.Capacity.Total)
	})

	t.Run("total equal to current fills", func(t *testing.T) {
		m := base()
		require.NoError(t, (&Patch{CapacityTotal: ptr(3)}).Apply(m, now))
		assert.Equal(t, StatusFull, m.Status)
	})

	t.Run("switch to instant clears conditions", func(t *testing.T) {
		m := base()
		require.NoError(t, (&Patch{JoinMode: mode(JoinModeInstant)}).Apply(m, now))
		assert.Empty(t, m.Conditions)
	})

	t.Run("approval without conditions", func(t *testing.T) {
		m := base()
		m.JoinMode = JoinModeInstant
		m.Conditions = ""
		err := (&Patch{JoinMode: mode(JoinModeApproval)}).Apply(m, now)
		assert.Contains(t, fieldsOf(t, err), "conditions")
		assert.Equal(t, JoinModeInstant, m.JoinMode)
	})

	t.Run("blank title", func(t *testing.T) {
		err := (&Patch{Title: str(" ")}).Validate()
		assert.Contains(t, fieldsOf(t, err), "title")
	})
}

func TestMeeting_Cancel(t *testing.T) {
	m := &Meeting{
		Status:   StatusFull,
		Capacity: Capacity{Current: 3, Total: 3},
		Participants: []Participant{
			{UserID: "a", Status: ParticipantMember},
			{UserID: "b", Status: ParticipantPending},
			{UserID: "c", Status: ParticipantRejected},
		},
	}
	m.Cancel(now)

	assert.Equal(t, StatusCanceled, m.Status)
	assert.Equal(t, 1, m.Capacity.Current)
	assert.Equal(t, ParticipantCanceled, m.Participants[0].Status)
	assert.Equal(t, ParticipantCanceled, m.Participants[1].Status)
	assert.Equal(t, ParticipantRejected, m.Participants[2].Status)
	assert.Len(t, m.Roster(), 1)

	later := now.Add(time.Hour)
	m.Cancel(later)
	assert.Equal(t, now.Unix(), m.UpdatedAt)
}

func TestMeeting_SyncFullStatus(t *testing.T) {
	m := &Meeting{Status: StatusOpen, Capacity: Capacity{Current: 4, Total: 4}}
	m.SyncFullStatus()
	assert.Equal(t, StatusFull, m.Status)

	m.Capacity.Current = 3
	m.SyncFullStatus()
	assert.Equal(t, StatusOpen, m.Status)

	m.Status = StatusStarted
	m.Capacity.Current = 4
	m.SyncFullStatus()
	assert.Equal(t, StatusStarted, m.Status)
}

func TestMeeting_EndTime(t *testing.T) {
	m := &Meeting{MeetingTime: now}
	assert.Equal(t, now.Add(2*time.Hour), m.EndTime())
	m.DurationMinutes = 30
	assert.Equal(t, now.Add(30*time.Minute), m.EndTime())
}

func TestMeeting_CloneIsDeep(t *testing.T) {
	lat, lng := 37.5, 127.0
	m := &Meeting{
		Location:     Location{Name: "x", Latitude: &lat, Longitude: &lng},
		Participants: []Participant{{UserID: "a", Status: ParticipantMember}},
	}
	c := m.Clone()
	c.Participants[0].Status = ParticipantCanceled
	*c.Location.Latitude = 0

	assert.Equal(t, ParticipantMember, m.Participants[0].Status)
	assert.Equal(t, 37.5, *m.Location.Latitude)
}
