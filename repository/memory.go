package repository

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"actionmate/apperr"
	"actionmate/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryEntry struct {
	mu      sync.Mutex
	meeting *models.Meeting
}

// MemoryRepository keeps meetings in process memory. Mutations on one
// meeting are serialized by that meeting's mutex.
type MemoryRepository struct {
	mu       sync.RWMutex
	meetings map[primitive.ObjectID]*memoryEntry
	opts     options
}

func NewMemoryRepository(opts ...Option) *MemoryRepository {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryRepository{
		meetings: make(map[primitive.ObjectID]*memoryEntry),
		opts:     o,
	}
}

// Seed stores meetings as-is. Intended for fixtures.
func (r *MemoryRepository) Seed(meetings ...*models.Meeting) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range meetings {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		r.meetings[m.ID] = &memoryEntry{meeting: m.Clone()}
	}
}

func (r *MemoryRepository) entry(id primitive.ObjectID) (*memoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.meetings[id]
	if !ok {
		return nil, apperr.ErrMeetingNotFound
	}
	return e, nil
}

func (r *MemoryRepository) List(ctx context.Context, filter Filter) ([]*models.Meeting, error) {
	r.mu.RLock()
	entries := make([]*memoryEntry, 0, len(r.meetings))
	for _, e := range r.meetings {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]*models.Meeting, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.mu.Lock()
		m := e.meeting.Clone()
		e.mu.Unlock()
		if filter.match(m) {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) > 0
	})
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.meeting.Clone(), nil
}

func (r *MemoryRepository) Create(ctx context.Context, params models.CreateParams, host models.Host) (*models.Meeting, error) {
	m := models.NewMeeting(params, host, r.opts.now())
	m.Version = 1

	r.mu.Lock()
	r.meetings[m.ID] = &memoryEntry{meeting: m}
	r.mu.Unlock()

	return m.Clone(), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.Patch) (*models.Meeting, error) {
	return r.Mutate(ctx, id, patchMeeting(patch, r.opts.now()))
}

func (r *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error) {
	return r.Mutate(ctx, id, cancelMeeting(r.opts.now()))
}

func (r *MemoryRepository) Mutate(ctx context.Context, id primitive.ObjectID, fn MutateFunc) (*models.Meeting, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next := e.meeting.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := commit(next, e.meeting.Version, r.opts.now()); err != nil {
		return nil, err
	}
	e.meeting = next
	return next.Clone(), nil
}
