package repository

import (
	"context"

	"actionmate/apperr"
	"actionmate/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

const meetingsCollection = "meetings"

// MongoRepository stores meetings in one collection. Mutations use
// compare-and-swap on the version field, so two writers racing for the last
// seat cannot both commit.
type MongoRepository struct {
	coll *mongo.Collection
	opts options
}

func NewMongoRepository(db *mongo.Database, opts ...Option) *MongoRepository {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MongoRepository{
		coll: db.Collection(meetingsCollection),
		opts: o,
	}
}

// EnsureIndexes creates the indexes used by List.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "meetingTime", Value: 1}}},
		{Keys: bson.D{{Key: "host.id", Value: 1}}},
		{Keys: bson.D{{Key: "participants.userId", Value: 1}}},
	})
	if err != nil {
		return errors.Wrap(err, "meetingRepo.EnsureIndexes.CreateMany")
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, filter Filter) ([]*models.Meeting, error) {
	findOptions := mongoopts.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, mongoFilter(filter), findOptions)
	if err != nil {
		return nil, apperr.ErrStoreFailed(errors.Wrap(err, "meetingRepo.List.Find"))
	}
	defer cursor.Close(ctx)

	var meetings []*models.Meeting
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, apperr.ErrStoreFailed(errors.Wrap(err, "meetingRepo.List.All"))
	}
	if meetings == nil {
		meetings = []*models.Meeting{}
	}
	return meetings, nil
}

func (r *MongoRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error) {
	var m models.Meeting
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.ErrMeetingNotFound
	}
	if err != nil {
		return nil, apperr.ErrStoreFailed(errors.Wrap(err, "meetingRepo.Get.FindOne"))
	}
	return &m, nil
}

func (r *MongoRepository) Create(ctx context.Context, params models.CreateParams, host models.Host) (*models.Meeting, error) {
	m := models.NewMeeting(params, host, r.opts.now())
	m.Version = 1
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return nil, apperr.ErrStoreFailed(errors.Wrap(err, "meetingRepo.Create.InsertOne"))
	}
	return m, nil
}

func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.Patch) (*models.Meeting, error) {
	return r.Mutate(ctx, id, patchMeeting(patch, r.opts.now()))
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Meeting, error) {
	return r.Mutate(ctx, id, cancelMeeting(r.opts.now()))
}

func (r *MongoRepository) Mutate(ctx context.Context, id primitive.ObjectID, fn MutateFunc) (*models.Meeting, error) {
	for attempt := 0; attempt < r.opts.maxRetries; attempt++ {
		current, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		next := current.Clone()
		if err := fn(next); err != nil {
			return nil, err
		}
		if err := commit(next, current.Version, r.opts.now()); err != nil {
			return nil, err
		}

		res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id, "version": current.Version}, next)
		if err != nil {
			return nil, apperr.ErrStoreFailed(errors.Wrap(err, "meetingRepo.Mutate.ReplaceOne"))
		}
		if res.MatchedCount == 1 {
			return next, nil
		}
	}
	return nil, apperr.ErrVersionConflict
}

func mongoFilter(f Filter) bson.M {
	q := bson.M{}
	if len(f.Statuses) > 0 {
		q["status"] = bson.M{"$in": f.Statuses}
	} else if !f.IncludeCanceled {
		q["status"] = bson.M{"$ne": models.StatusCanceled}
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.HostID != "" {
		q["host.id"] = f.HostID
	}
	if f.ParticipantID != "" {
		q["participants"] = bson.M{"$elemMatch": bson.M{
			"userId": f.ParticipantID,
			"status": bson.M{"$in": []models.ParticipantStatus{models.ParticipantMember, models.ParticipantPending}},
		}}
	}
	return q
}
