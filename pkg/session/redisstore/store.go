// Package redisstore keeps session records in Redis.
//
// Each record is a JSON document under "<prefix>:{<id>}" whose TTL ends at the
// absolute deadline, so Redis expires sessions on its own. Group membership
// is tracked in a set under "<prefix>:group:{<group id>}" to support
// RetireGroup.
//
// Retiring a record deletes it and leaves a tombstone under
// "<prefix>:retired:{<id>}" for the rest of its lifetime. Save skips ids that
// carry a tombstone, so a late write cannot bring a retired id back. The hash
// tags keep a record and its tombstone in one cluster slot; no command spans
// more than one slot.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

const defaultPrefix = "session"

// KEYS: record, tombstone. ARGV: payload, ttl in ms.
var saveScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

// KEYS: record, tombstone.
var retireScript = redis.NewScript(`
local ttl = redis.call("PTTL", KEYS[1])
redis.call("DEL", KEYS[1])
if ttl > 0 then
	redis.call("SET", KEYS[2], "1", "PX", ttl)
end
return ttl
`)

// Store implements session.Store and session.GroupRetirer on Redis.
type Store[T any] struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// Option configures the store.
type Option[T any] func(*Store[T])

// WithPrefix sets the key namespace. Empty values are ignored.
func WithPrefix[T any](prefix string) Option[T] {
	return func(s *Store[T]) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithClock overrides the time source used to compute TTLs.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(s *Store[T]) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Redis-backed store.
func New[T any](client redis.UniversalClient, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		client: client,
		prefix: defaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch loads and decodes the record.
func (s *Store[T]) Fetch(ctx context.Context, id string) (session.Data[T], error) {
	var data session.Data[T]

	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return data, session.ErrNotFound
	}
	if err != nil {
		return data, errors.Join(ErrFetch, err)
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return data, errors.Join(ErrDecode, err)
	}
	return data, nil
}

// Save writes the record with a TTL that ends at the absolute deadline.
// A record already past that deadline, or flagged as retired, is retired instead.
func (s *Store[T]) Save(ctx context.Context, data session.Data[T]) error {
	if data.ID == "" {
		return session.ErrInvalidData
	}

	ttl := data.AbsoluteDeadline.Sub(s.now())
	if ttl < time.Millisecond || data.IsRetired {
		return s.Retire(ctx, data.ID)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		saveScript.Eval(ctx, pipe, s.recordKeys(data.ID), raw, ttl.Milliseconds())
		if data.GroupID != "" {
			gk := s.groupKey(data.GroupID)
			pipe.SAdd(ctx, gk, data.ID)
			// members of a chain share the absolute deadline
			pipe.Expire(ctx, gk, ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrSave, err)
	}
	return nil
}

// Retire deletes the record and tombstones its id until the record would have expired.
func (s *Store[T]) Retire(ctx context.Context, id string) error {
	if err := retireScript.Eval(ctx, s.client, s.recordKeys(id)).Err(); err != nil {
		return errors.Join(ErrRetire, err)
	}
	return nil
}

// RetireGroup retires every record linked to groupID, then drops the group.
func (s *Store[T]) RetireGroup(ctx context.Context, groupID string) error {
	if groupID == "" {
		return nil
	}

	gk := s.groupKey(groupID)
	ids, err := s.client.SMembers(ctx, gk).Result()
	if err != nil {
		return errors.Join(ErrRetire, err)
	}

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			retireScript.Eval(ctx, pipe, s.recordKeys(id))
		}
		pipe.Del(ctx, gk)
		return nil
	})
	if err != nil {
		return errors.Join(ErrRetire, err)
	}
	return nil
}

func (s *Store[T]) key(id string) string {
	return s.prefix + ":{" + id + "}"
}

func (s *Store[T]) tombstoneKey(id string) string {
	return s.prefix + ":retired:{" + id + "}"
}

func (s *Store[T]) recordKeys(id string) []string {
	return []string{s.key(id), s.tombstoneKey(id)}
}

func (s *Store[T]) groupKey(groupID string) string {
	return s.prefix + ":group:{" + groupID + "}"
}
