package membership

import (
	"context"
	"errors"
	"sort"
	"time"

	"actionmate/apperr"
	"actionmate/models"
	"actionmate/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// errUnchanged aborts a mutation that has nothing to write.
var errUnchanged = errors.New("membership: unchanged")

// Engine is the only place capacity and membership change together.
type Engine struct {
	repo repository.MeetingRepository
	now  func() time.Time
	log  *zap.Logger
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(repo repository.MeetingRepository, log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{repo: repo, now: time.Now, log: log.Named("membership")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type JoinResult struct {
	Meeting    *models.Meeting
	Membership models.MembershipStatus
	MyState    models.MyState
}

// Create validates params and stores a new meeting hosted by host.
func (e *Engine) Create(ctx context.Context, params models.CreateParams, host models.User) (*models.Meeting, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	m, err := e.repo.Create(ctx, params, host.AsHost())
	if err != nil {
		return nil, err
	}
	e.log.Info("meeting created",
		zap.String("meetingId", m.ID.Hex()),
		zap.String("hostId", host.ID),
		zap.String("joinMode", string(m.JoinMode)),
		zap.Int("capacityTotal", m.Capacity.Total))
	return m, nil
}

// Update merges patch into a meeting owned by hostID.
func (e *Engine) Update(ctx context.Context, id primitive.ObjectID, hostID string, patch models.Patch) (*models.Meeting, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if err := e.requireHost(ctx, id, hostID); err != nil {
		return nil, err
	}
	return e.repo.Update(ctx, id, patch)
}

// CancelMeeting is the host's destructive cancel. Canceling twice is a no-op.
func (e *Engine) CancelMeeting(ctx context.Context, id primitive.ObjectID, hostID string) (*models.Meeting, error) {
	if err := e.requireHost(ctx, id, hostID); err != nil {
		return nil, err
	}
	m, err := e.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	e.log.Info("meeting canceled", zap.String("meetingId", id.Hex()), zap.String("hostId", hostID))
	return m, nil
}

// Join admits user to the meeting. INSTANT meetings take a seat right away;
// APPROVAL meetings record a pending request without touching capacity.
// Joining again as MEMBER or PENDING changes nothing.
//
// When every seat is taken the meeting is healed to FULL and the returned
// result carries the viewer state together with ErrCapacityFull.
func (e *Engine) Join(ctx context.Context, id primitive.ObjectID, user models.User) (*JoinResult, error) {
	var (
		outcome    error
		membership = models.MembershipNone
	)

	m, err := e.repo.Mutate(ctx, id, func(m *models.Meeting) error {
		outcome = nil
		membership = models.MembershipNone

		if m.IsHost(user.ID) {
			return apperr.ErrHostCannotJoin
		}
		if m.Status == models.StatusCanceled || m.Status == models.StatusEnded {
			return apperr.ErrMeetingClosed
		}
		if p := m.Participant(user.ID); p != nil {
			switch p.Status {
			case models.ParticipantMember, models.ParticipantPending:
				membership = p.Status.Membership()
				return errUnchanged
			case models.ParticipantRejected:
				return apperr.ErrJoinRejected
			case models.ParticipantCanceled:
				return apperr.ErrMeetingClosed
			}
		}
		if m.Status == models.StatusFull {
			outcome = apperr.ErrCapacityFull
			return errUnchanged
		}
		if m.Capacity.Current >= m.Capacity.Total {
			if m.Status == models.StatusOpen {
				m.Status = models.StatusFull
			}
			outcome = apperr.ErrCapacityFull
			return nil
		}

		row := models.Participant{
			UserID:    user.ID,
			Nickname:  user.Nickname,
			AppliedAt: e.now().Unix(),
		}
		switch m.JoinMode {
		case models.JoinModeApproval:
			row.Status = models.ParticipantPending
		default:
			row.Status = models.ParticipantMember
			row.DecidedAt = row.AppliedAt
			m.Capacity.Current++
			m.SyncFullStatus()
		}
		m.Participants = append(m.Participants, row)
		membership = row.Status.Membership()
		return nil
	})
	if errors.Is(err, errUnchanged) {
		m, err = e.repo.Get(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	res := &JoinResult{Meeting: m, Membership: membership}
	if outcome != nil {
		res.MyState = models.MyState{
			MembershipStatus: models.MembershipNone,
			CanJoin:          false,
			Reason:           models.ReasonCapacityFull,
		}
		e.log.Info("join refused: capacity full",
			zap.String("meetingId", id.Hex()),
			zap.String("userId", user.ID),
			zap.Int("current", m.Capacity.Current),
			zap.Int("total", m.Capacity.Total))
		return res, outcome
	}

	res.MyState = Project(m, user.ID)
	e.log.Info("joined",
		zap.String("meetingId", id.Hex()),
		zap.String("userId", user.ID),
		zap.String("membership", string(membership)),
		zap.Int("current", m.Capacity.Current),
		zap.Int("total", m.Capacity.Total))
	return res, nil
}

// CancelJoin withdraws userID. A member frees a seat (and reopens a FULL
// meeting); a pending request never held one. Calling it without a live
// membership succeeds without changes.
func (e *Engine) CancelJoin(ctx context.Context, id primitive.ObjectID, userID string) (*models.Meeting, models.MyState, error) {
	m, err := e.repo.Mutate(ctx, id, func(m *models.Meeting) error {
		if m.IsHost(userID) {
			return apperr.ErrHostCannotLeave
		}
		p := m.Participant(userID)
		if p == nil {
			return errUnchanged
		}
		switch p.Status {
		case models.ParticipantMember:
			if m.Status == models.StatusEnded {
				return apperr.ErrMeetingClosed
			}
			m.RemoveParticipant(userID)
			if m.Capacity.Current > 0 {
				m.Capacity.Current--
			}
			if m.Status == models.StatusFull {
				m.Status = models.StatusOpen
			}
		case models.ParticipantPending:
			if m.Status == models.StatusEnded {
				return apperr.ErrMeetingClosed
			}
			m.RemoveParticipant(userID)
		default:
			return errUnchanged
		}
		return nil
	})
	if errors.Is(err, errUnchanged) {
		m, err = e.repo.Get(ctx, id)
	}
	if err != nil {
		return nil, models.MyState{}, err
	}

	e.log.Info("join canceled",
		zap.String("meetingId", id.Hex()),
		zap.String("userId", userID),
		zap.Int("current", m.Capacity.Current))
	return m, Project(m, userID), nil
}

// Approve admits a pending participant. Returns the refreshed roster.
func (e *Engine) Approve(ctx context.Context, id primitive.ObjectID, hostID, userID string) ([]models.Participant, error) {
	var outcome error
	m, err := e.repo.Mutate(ctx, id, func(m *models.Meeting) error {
		outcome = nil
		p, err := pendingRow(m, hostID, userID)
		if err != nil {
			return err
		}
		if m.Capacity.Current >= m.Capacity.Total {
			if m.Status == models.StatusOpen {
				m.Status = models.StatusFull
			}
			outcome = apperr.ErrCapacityFull
			return nil
		}
		p.Status = models.ParticipantMember
		p.DecidedAt = e.now().Unix()
		m.Capacity.Current++
		m.SyncFullStatus()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		return roster(m), outcome
	}

	e.log.Info("participant approved",
		zap.String("meetingId", id.Hex()),
		zap.String("userId", userID),
		zap.Int("current", m.Capacity.Current),
		zap.Int("total", m.Capacity.Total))
	return roster(m), nil
}

// Reject declines a pending participant without touching capacity.
func (e *Engine) Reject(ctx context.Context, id primitive.ObjectID, hostID, userID string) ([]models.Participant, error) {
	m, err := e.repo.Mutate(ctx, id, func(m *models.Meeting) error {
		p, err := pendingRow(m, hostID, userID)
		if err != nil {
			return err
		}
		p.Status = models.ParticipantRejected
		p.DecidedAt = e.now().Unix()
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("participant rejected", zap.String("meetingId", id.Hex()), zap.String("userId", userID))
	return roster(m), nil
}

// Participants returns the roster. Only the host sees pending and rejected
// rows; everyone else sees confirmed members.
func (e *Engine) Participants(ctx context.Context, id primitive.ObjectID, viewerID string) ([]models.Participant, error) {
	m, err := e.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	all := roster(m)
	if m.IsHost(viewerID) {
		return all, nil
	}
	members := make([]models.Participant, 0, len(all))
	for _, p := range all {
		if p.Status == models.ParticipantMember {
			members = append(members, p)
		}
	}
	return members, nil
}

func (e *Engine) requireHost(ctx context.Context, id primitive.ObjectID, hostID string) error {
	m, err := e.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !m.IsHost(hostID) {
		return apperr.ErrNotHost
	}
	return nil
}

func pendingRow(m *models.Meeting, hostID, userID string) (*models.Participant, error) {
	if !m.IsHost(hostID) {
		return nil, apperr.ErrNotHost
	}
	if m.Status == models.StatusCanceled || m.Status == models.StatusEnded {
		return nil, apperr.ErrMeetingClosed
	}
	p := m.Participant(userID)
	if p == nil || !p.OnRoster() {
		return nil, apperr.ErrParticipantNotFound
	}
	if p.Status != models.ParticipantPending {
		return nil, apperr.ErrNotPending
	}
	return p, nil
}

func roster(m *models.Meeting) []models.Participant {
	out := m.Roster()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedAt < out[j].AppliedAt
	})
	return out
}
