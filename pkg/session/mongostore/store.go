// Package mongostore keeps session records in a MongoDB collection.
//
// Documents are keyed by session id. EnsureIndexes adds a TTL index on the
// absolute deadline, letting the server reap finished sessions, and an index
// on group_id for RetireGroup. Values must be encodable by the bson package.
// Save upserts with $max on is_retired, so a retired document stays retired.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

type document[T any] struct {
	ID               string    `bson:"_id"`
	AbsoluteDeadline time.Time `bson:"absolute_deadline"`
	IdleDeadline     time.Time `bson:"idle_deadline"`
	RenewalDeadline  time.Time `bson:"renewal_deadline"`
	IsRetired        bool      `bson:"is_retired"`
	GroupID          string    `bson:"group_id,omitempty"`
	Values           T         `bson:"values"`
}

func (d document[T]) data() session.Data[T] {
	return session.Data[T]{
		ID:               d.ID,
		AbsoluteDeadline: d.AbsoluteDeadline,
		IdleDeadline:     d.IdleDeadline,
		RenewalDeadline:  d.RenewalDeadline,
		IsRetired:        d.IsRetired,
		GroupID:          d.GroupID,
		Values:           d.Values,
	}
}

// Store implements session.Store, session.GroupRetirer and session.ExpiredCleaner.
type Store[T any] struct {
	coll *mongo.Collection
	now  func() time.Time
}

// New creates a store over coll.
func New[T any](coll *mongo.Collection) *Store[T] {
	return &Store[T]{coll: coll, now: time.Now}
}

// EnsureIndexes creates the TTL and group indexes. Safe to call on every start.
func (s *Store[T]) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "absolute_deadline", Value: 1}},
			Options: options.Index().SetName("session_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}},
			Options: options.Index().SetName("session_group").SetSparse(true),
		},
	})
	if err != nil {
		return errors.Join(ErrIndex, err)
	}
	return nil
}

func (s *Store[T]) Fetch(ctx context.Context, id string) (session.Data[T], error) {
	var doc document[T]
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return session.Data[T]{}, session.ErrNotFound
	}
	if err != nil {
		return session.Data[T]{}, errors.Join(ErrFetch, err)
	}
	return doc.data(), nil
}

func (s *Store[T]) Save(ctx context.Context, data session.Data[T]) error {
	if data.ID == "" {
		return session.ErrInvalidData
	}

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": data.ID},
		saveUpdate(data),
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrSave, err)
	}
	return nil
}

// saveUpdate writes every field but only ever raises is_retired.
func saveUpdate[T any](d session.Data[T]) bson.D {
	set := bson.D{
		{Key: "absolute_deadline", Value: d.AbsoluteDeadline},
		{Key: "idle_deadline", Value: d.IdleDeadline},
		{Key: "renewal_deadline", Value: d.RenewalDeadline},
		{Key: "values", Value: d.Values},
	}
	update := bson.D{{Key: "$max", Value: bson.D{{Key: "is_retired", Value: d.IsRetired}}}}
	if d.GroupID == "" {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "group_id", Value: ""}}})
	} else {
		set = append(set, bson.E{Key: "group_id", Value: d.GroupID})
	}
	return append(bson.D{{Key: "$set", Value: set}}, update...)
}

func (s *Store[T]) Retire(ctx context.Context, id string) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_retired": true}})
	if err != nil {
		return errors.Join(ErrRetire, err)
	}
	return nil
}

func (s *Store[T]) RetireGroup(ctx context.Context, groupID string) error {
	if groupID == "" {
		return nil
	}
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"group_id": groupID, "is_retired": false},
		bson.M{"$set": bson.M{"is_retired": true}},
	)
	if err != nil {
		return errors.Join(ErrRetire, err)
	}
	return nil
}

// DeleteExpired removes idle-expired documents ahead of the TTL monitor,
// along with absolute-expired ones it has not reached yet.
func (s *Store[T]) DeleteExpired(ctx context.Context) (int64, error) {
	now := s.now()
	res, err := s.coll.DeleteMany(ctx, bson.M{"$or": bson.A{
		bson.M{"absolute_deadline": bson.M{"$lte": now}},
		bson.M{"idle_deadline": bson.M{"$lte": now}},
	}})
	if err != nil {
		return 0, errors.Join(ErrCleanup, err)
	}
	return res.DeletedCount, nil
}
