package services

import (
	"context"
	"strings"
	"time"

	"actionmate/apperr"
	"actionmate/membership"
	"actionmate/models"
	"actionmate/ranking"
	"actionmate/repository"

	"go.uber.org/zap"
)

const DefaultRadiusKm = 5.0

type ListOptions struct {
	Category string
	Sort     string
	Viewer   *ranking.Point
}

type AroundOptions struct {
	RadiusKm float64
	Category string
	Sort     string
}

// MeetingService implements the operations the API exposes. Reads pass
// through status derivation and ranking; writes go through the engine.
type MeetingService struct {
	repo      repository.MeetingRepository
	engine    *membership.Engine
	hotWindow int
	now       func() time.Time
	log       *zap.Logger
}

type Option func(*MeetingService)

func WithClock(now func() time.Time) Option {
	return func(s *MeetingService) { s.now = now }
}

func WithHotWindow(minutes int) Option {
	return func(s *MeetingService) {
		if minutes > 0 {
			s.hotWindow = minutes
		}
	}
}

func NewMeetingService(repo repository.MeetingRepository, engine *membership.Engine, log *zap.Logger, opts ...Option) *MeetingService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &MeetingService{
		repo:      repo,
		engine:    engine,
		hotWindow: ranking.DefaultHotWindowMinutes,
		now:       time.Now,
		log:       log.Named("meetings"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MeetingService) ListMeetings(ctx context.Context, viewer models.User, opts ListOptions) ([]MeetingView, error) {
	category, err := parseCategory(opts.Category)
	if err != nil {
		return nil, err
	}
	meetings, err := s.repo.List(ctx, repository.Filter{Category: category})
	if err != nil {
		return nil, err
	}
	ranking.Sort(meetings, ranking.ParseMode(opts.Sort, ranking.ModeLatest), opts.Viewer)
	return newViews(meetings, viewer.ID, opts.Viewer), nil
}

func (s *MeetingService) ListMeetingsAround(ctx context.Context, viewer models.User, at ranking.Point, opts AroundOptions) ([]MeetingView, error) {
	if at.Lat < -90 || at.Lat > 90 || at.Lng < -180 || at.Lng > 180 {
		return nil, apperr.Validation("invalid coordinates", "lat", "lng")
	}
	category, err := parseCategory(opts.Category)
	if err != nil {
		return nil, err
	}
	radius := opts.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}

	meetings, err := s.repo.List(ctx, repository.Filter{Category: category})
	if err != nil {
		return nil, err
	}
	meetings = ranking.Within(meetings, at, radius)
	ranking.Sort(meetings, ranking.ParseMode(opts.Sort, ranking.ModeNear), &at)
	return newViews(meetings, viewer.ID, &at), nil
}

func (s *MeetingService) ListHotMeetings(ctx context.Context, opts ranking.HotOptions) ([]ranking.HotItem, error) {
	if opts.WithinMinutes <= 0 {
		opts.WithinMinutes = s.hotWindow
	}
	meetings, err := s.repo.List(ctx, repository.Filter{Statuses: []models.Status{models.StatusOpen}})
	if err != nil {
		return nil, err
	}
	items := ranking.Hot(meetings, s.now(), opts)
	s.log.Debug("hot meetings", zap.Int("candidates", len(meetings)), zap.Int("returned", len(items)))
	return items, nil
}

// MyMeetings lists meetings the viewer hosts (role "host") or has joined or
// applied to (role "joined").
func (s *MeetingService) MyMeetings(ctx context.Context, viewer models.User, role string) ([]MeetingView, error) {
	filter := repository.Filter{IncludeCanceled: true}
	switch strings.ToLower(role) {
	case "", "host":
		filter.HostID = viewer.ID
	case "joined":
		filter.ParticipantID = viewer.ID
	default:
		return nil, apperr.Validation("role must be host or joined", "role")
	}
	meetings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	ranking.Sort(meetings, ranking.ModeSoon, nil)
	return newViews(meetings, viewer.ID, nil), nil
}

func (s *MeetingService) GetMeeting(ctx context.Context, viewer models.User, id string, at *ranking.Point) (MeetingView, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return MeetingView{}, err
	}
	m, err := s.repo.Get(ctx, oid)
	if err != nil {
		return MeetingView{}, err
	}
	v := newView(m, viewer.ID)
	v.withDistance(at)
	return v, nil
}

func (s *MeetingService) CreateMeeting(ctx context.Context, viewer models.User, params models.CreateParams) (MeetingView, error) {
	m, err := s.engine.Create(ctx, params, viewer)
	if err != nil {
		return MeetingView{}, err
	}
	return newView(m, viewer.ID), nil
}

func (s *MeetingService) UpdateMeeting(ctx context.Context, viewer models.User, id string, patch models.Patch) (MeetingView, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return MeetingView{}, err
	}
	m, err := s.engine.Update(ctx, oid, viewer.ID, patch)
	if err != nil {
		return MeetingView{}, err
	}
	return newView(m, viewer.ID), nil
}

func (s *MeetingService) CancelMeeting(ctx context.Context, viewer models.User, id string) (MeetingView, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return MeetingView{}, err
	}
	m, err := s.engine.CancelMeeting(ctx, oid, viewer.ID)
	if err != nil {
		return MeetingView{}, err
	}
	return newView(m, viewer.ID), nil
}

// JoinMeeting returns the view even when capacity is exhausted so the
// caller can render the healed state next to the error.
func (s *MeetingService) JoinMeeting(ctx context.Context, viewer models.User, id string) (*JoinView, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	res, err := s.engine.Join(ctx, oid, viewer)
	if res == nil {
		return nil, err
	}
	return &JoinView{
		Post:             viewWithState(res.Meeting, res.MyState),
		MembershipStatus: res.Membership,
	}, err
}

func (s *MeetingService) CancelJoin(ctx context.Context, viewer models.User, id string) (MeetingView, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return MeetingView{}, err
	}
	m, my, err := s.engine.CancelJoin(ctx, oid, viewer.ID)
	if err != nil {
		return MeetingView{}, err
	}
	return viewWithState(m, my), nil
}

func (s *MeetingService) GetParticipants(ctx context.Context, viewer models.User, id string) ([]models.Participant, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.engine.Participants(ctx, oid, viewer.ID)
}

func (s *MeetingService) ApproveParticipant(ctx context.Context, viewer models.User, id, userID string) ([]models.Participant, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.engine.Approve(ctx, oid, viewer.ID, userID)
}

func (s *MeetingService) RejectParticipant(ctx context.Context, viewer models.User, id, userID string) ([]models.Participant, error) {
	oid, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.engine.Reject(ctx, oid, viewer.ID, userID)
}

func parseCategory(raw string) (models.Category, error) {
	if raw == "" || strings.EqualFold(raw, "ALL") {
		return "", nil
	}
	c := models.Category(strings.ToUpper(raw))
	if !c.Valid() {
		return "", apperr.Validation("unknown category", "category")
	}
	return c, nil
}
