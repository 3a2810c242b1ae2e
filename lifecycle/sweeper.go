package lifecycle

import (
	"context"
	"errors"
	"time"

	"actionmate/apperr"
	"actionmate/models"
	"actionmate/repository"

	"go.uber.org/zap"
)

var errNoTransition = errors.New("lifecycle: no transition")

// Sweeper moves meetings through the time-based part of their lifecycle:
// OPEN/FULL become STARTED at meeting time and anything not canceled
// becomes ENDED once the planned duration has passed.
type Sweeper struct {
	repo     repository.MeetingRepository
	interval time.Duration
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Sweeper)

func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) { s.now = now }
}

func NewSweeper(repo repository.MeetingRepository, interval time.Duration, log *zap.Logger, opts ...Option) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sweeper{repo: repo, interval: interval, now: time.Now, log: log.Named("lifecycle")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the status m should have at now, and whether it differs
// from the stored one.
func Next(m *models.Meeting, now time.Time) (models.Status, bool) {
	if m.MeetingTime.IsZero() {
		return m.Status, false
	}
	switch m.Status {
	case models.StatusOpen, models.StatusFull, models.StatusStarted:
	default:
		return m.Status, false
	}
	if !now.Before(m.EndTime()) {
		return models.StatusEnded, true
	}
	if !now.Before(m.MeetingTime) && m.Status != models.StatusStarted {
		return models.StatusStarted, true
	}
	return m.Status, false
}

// Sweep applies due transitions once and returns how many meetings changed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	live, err := s.repo.List(ctx, repository.Filter{
		Statuses: []models.Status{models.StatusOpen, models.StatusFull, models.StatusStarted},
	})
	if err != nil {
		return 0, err
	}

	now := s.now()
	changed := 0
	for _, m := range live {
		if _, due := Next(m, now); !due {
			continue
		}
		updated, err := s.repo.Mutate(ctx, m.ID, func(cur *models.Meeting) error {
			next, due := Next(cur, now)
			if !due {
				return errNoTransition
			}
			cur.Status = next
			return nil
		})
		switch {
		case errors.Is(err, errNoTransition), errors.Is(err, apperr.ErrMeetingNotFound):
			continue
		case err != nil:
			s.log.Warn("transition failed", zap.String("meetingId", m.ID.Hex()), zap.Error(err))
			continue
		}
		changed++
		s.log.Info("meeting transitioned",
			zap.String("meetingId", m.ID.Hex()),
			zap.String("from", string(m.Status)),
			zap.String("to", string(updated.Status)))
	}
	return changed, nil
}

// Run sweeps on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("lifecycle sweeper started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("lifecycle sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.log.Error("sweep failed", zap.Error(err))
			}
		}
	}
}
