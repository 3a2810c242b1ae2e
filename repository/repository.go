package repository

import (
	"context"
	"time"

	"actionmate/apperr"
	"actionmate/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MutateFunc edits a private copy of a meeting. Returning an error discards
// the edit.
type MutateFunc func(m *models.Meeting) error

// Filter narrows List. Zero values match everything except canceled meetings.
type Filter struct {
	Category        models.Category
	HostID          string
	ParticipantID   string // live (PENDING or MEMBER) participant rows only
	Statuses        []models.Status
	IncludeCanceled bool
}

// MeetingRepository owns the canonical meeting records. Every mutation runs
// as one atomic read-modify-write per meeting and keeps
// capacity.current <= capacity.total.
type MeetingRepository interface {
	List(ctx context.Context, filter Filter) ([]*models.Meeting, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error)
	Create(ctx context.Context, params models.CreateParams, host models.Host) (*models.Meeting, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.Patch) (*models.Meeting, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error)
	Mutate(ctx context.Context, id primitive.ObjectID, fn MutateFunc) (*models.Meeting, error)
}

// Option configures either repository implementation.
type Option func(*options)

type options struct {
	now        func() time.Time
	maxRetries int
}

func defaultOptions() options {
	return options{now: time.Now, maxRetries: 5}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithMaxRetries bounds compare-and-swap attempts in the mongo repository.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRetries = n
		}
	}
}

// ParseID converts a hex meeting id into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.ErrInvalidMeetingID
	}
	return id, nil
}

func patchMeeting(patch models.Patch, now time.Time) MutateFunc {
	return func(m *models.Meeting) error {
		if m.Status == models.StatusCanceled || m.Status == models.StatusEnded {
			return apperr.ErrMeetingClosed
		}
		return patch.Apply(m, now)
	}
}

func cancelMeeting(now time.Time) MutateFunc {
	return func(m *models.Meeting) error {
		m.Cancel(now)
		return nil
	}
}

// commit validates the edited copy and stamps bookkeeping fields.
func commit(next *models.Meeting, prevVersion int64, now time.Time) error {
	if !next.Capacity.Valid() {
		return apperr.ErrCapacityInvariant
	}
	next.Version = prevVersion + 1
	next.UpdatedAt = now.Unix()
	return nil
}

func (f Filter) match(m *models.Meeting) bool {
	if len(f.Statuses) == 0 && m.Status == models.StatusCanceled && !f.IncludeCanceled {
		return false
	}
	if f.Category != "" && m.Category != f.Category {
		return false
	}
	if f.HostID != "" && m.Host.ID != f.HostID {
		return false
	}
	if f.ParticipantID != "" {
		p := m.Participant(f.ParticipantID)
		if p == nil || (p.Status != models.ParticipantMember && p.Status != models.ParticipantPending) {
			return false
		}
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if m.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
