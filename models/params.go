package models

import (
	"errors"
	"strings"
	"time"

	"actionmate/apperr"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

type CreateParams struct {
	Category        Category  `json:"category" validate:"required,oneof=SPORT GAME MEAL STUDY ETC"`
	Title           string    `json:"title" validate:"required,max=100"`
	Content         string    `json:"content" validate:"max=2000"`
	MeetingTime     time.Time `json:"meetingTime"`
	DurationMinutes int       `json:"durationMinutes" validate:"gte=0,lte=1440"`
	Location        Location  `json:"location"`
	CapacityTotal   int       `json:"capacityTotal" validate:"required,gte=1,lte=100"`
	JoinMode        JoinMode  `json:"joinMode" validate:"required,oneof=INSTANT APPROVAL"`
	Conditions      string    `json:"conditions" validate:"required_if=JoinMode APPROVAL,max=500"`
}

// Validate checks a create request before it reaches the repository.
func (p *CreateParams) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	p.Location.Name = strings.TrimSpace(p.Location.Name)
	p.Conditions = strings.TrimSpace(p.Conditions)

	fields := validationFields(validate.Struct(p))
	if p.MeetingTime.IsZero() {
		fields = append(fields, "meetingTime")
	}
	if p.Location.Latitude != nil && p.Location.Longitude == nil ||
		p.Location.Latitude == nil && p.Location.Longitude != nil {
		fields = append(fields, "location")
	}
	if len(fields) > 0 {
		return apperr.Validation("invalid meeting: "+strings.Join(fields, ", "), fields...)
	}
	return nil
}

// NewMeeting builds a fresh OPEN meeting. The host holds one implicit seat
// without a participant row.
func NewMeeting(p CreateParams, host Host, now time.Time) *Meeting {
	m := &Meeting{
		ID:              primitive.NewObjectID(),
		Category:        p.Category,
		Title:           p.Title,
		Content:         p.Content,
		MeetingTime:     p.MeetingTime,
		DurationMinutes: p.DurationMinutes,
		Location:        p.Location,
		Capacity:        Capacity{Current: 1, Total: p.CapacityTotal},
		JoinMode:        p.JoinMode,
		Status:          StatusOpen,
		Host:            host,
		Participants:    []Participant{},
		CreatedAt:       now.Unix(),
		UpdatedAt:       now.Unix(),
	}
	if p.JoinMode == JoinModeApproval {
		m.Conditions = p.Conditions
	}
	return m.Clone()
}

// Patch carries the fields a host may change. Nil means "keep".
type Patch struct {
	Category        *Category  `json:"category" validate:"omitempty,oneof=SPORT GAME MEAL STUDY ETC"`
	Title           *string    `json:"title" validate:"omitempty,min=1,max=100"`
	Content         *string    `json:"content" validate:"omitempty,max=2000"`
	MeetingTime     *time.Time `json:"meetingTime"`
	DurationMinutes *int       `json:"durationMinutes" validate:"omitempty,gte=0,lte=1440"`
	Location        *Location  `json:"location"`
	CapacityTotal   *int       `json:"capacityTotal" validate:"omitempty,gte=1,lte=100"`
	JoinMode        *JoinMode  `json:"joinMode" validate:"omitempty,oneof=INSTANT APPROVAL"`
	Conditions      *string    `json:"conditions" validate:"omitempty,max=500"`
}

func (p *Patch) Validate() error {
	fields := validationFields(validate.Struct(p))
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		fields = append(fields, "title")
	}
	if p.MeetingTime != nil && p.MeetingTime.IsZero() {
		fields = append(fields, "meetingTime")
	}
	if len(fields) > 0 {
		return apperr.Validation("invalid meeting update: "+strings.Join(fields, ", "), fields...)
	}
	return nil
}

// Apply merges the patch into m. ID, host, participants and capacity.current
// are never touched; a total below the seats already taken is rejected.
func (p *Patch) Apply(m *Meeting, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CapacityTotal != nil && *p.CapacityTotal < m.Capacity.Current {
		return apperr.Validation("capacityTotal is below the seats already taken", "capacityTotal")
	}

	next := m.Clone()
	if p.Category != nil {
		next.Category = *p.Category
	}
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		next.Content = *p.Content
	}
	if p.MeetingTime != nil {
		next.MeetingTime = *p.MeetingTime
	}
	if p.DurationMinutes != nil {
		next.DurationMinutes = *p.DurationMinutes
	}
	if p.Location != nil {
		next.Location = *p.Location
	}
	if p.CapacityTotal != nil {
		next.Capacity.Total = *p.CapacityTotal
	}
	if p.JoinMode != nil {
		next.JoinMode = *p.JoinMode
	}
	if p.Conditions != nil {
		next.Conditions = strings.TrimSpace(*p.Conditions)
	}
	if next.JoinMode == JoinModeApproval && next.Conditions == "" {
		return apperr.Validation("conditions are required for approval meetings", "conditions")
	}
	if next.JoinMode == JoinModeInstant {
		next.Conditions = ""
	}

	next.SyncFullStatus()
	next.UpdatedAt = now.Unix()
	*m = *next
	return nil
}

// Cancel voids the meeting: status CANCELED, every live entitlement voided
// and the capacity reset to the host seat.
func (m *Meeting) Cancel(now time.Time) {
	if m.Status == StatusCanceled {
		return
	}
	for i := range m.Participants {
		switch m.Participants[i].Status {
		case ParticipantMember, ParticipantPending:
			m.Participants[i].Status = ParticipantCanceled
			m.Participants[i].DecidedAt = now.Unix()
		}
	}
	m.Status = StatusCanceled
	m.Capacity.Current = 1
	m.UpdatedAt = now.Unix()
}

func validationFields(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, jsonFieldName(fe.Namespace()))
	}
	return fields
}

// jsonFieldName turns "CreateParams.Location.Name" into "location.name".
func jsonFieldName(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}
