// Package pgstore keeps session records in PostgreSQL.
//
// The schema ships as goose migrations in Migrations; apply them with
// pg.Migrate before the first request. Values are stored as JSONB in the
// payload column. Retire flips is_retired so the row stays visible to
// audits until DeleteExpired removes it. Save never clears the flag, so a
// late write against a retired id cannot bring it back.
package pgstore

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/sessionkit/pkg/pg"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// Migrations holds the schema for the sessions table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads.
const MigrationsDir = "migrations"

// DB is the subset of pgxpool.Pool and pgx.Tx the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	fetchQuery = `SELECT id, absolute_deadline, idle_deadline, renewal_deadline, is_retired, group_id, payload
FROM sessions WHERE id = $1`

	upsertQuery = `INSERT INTO sessions (id, absolute_deadline, idle_deadline, renewal_deadline, is_retired, group_id, payload, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (id) DO UPDATE SET
	absolute_deadline = EXCLUDED.absolute_deadline,
	idle_deadline = EXCLUDED.idle_deadline,
	renewal_deadline = EXCLUDED.renewal_deadline,
	is_retired = sessions.is_retired OR EXCLUDED.is_retired,
	group_id = EXCLUDED.group_id,
	payload = EXCLUDED.payload,
	updated_at = now()`

	retireQuery      = `UPDATE sessions SET is_retired = TRUE, updated_at = now() WHERE id = $1`
	retireGroupQuery = `UPDATE sessions SET is_retired = TRUE, updated_at = now() WHERE group_id = $1 AND NOT is_retired`
	deleteExpired    = `DELETE FROM sessions WHERE absolute_deadline <= $1 OR idle_deadline <= $1`
)

// Store implements session.Store, session.GroupRetirer and session.ExpiredCleaner.
type Store[T any] struct {
	db  DB
	now func() time.Time
}

// New creates a store on top of a pool or transaction.
func New[T any](db DB) *Store[T] {
	return &Store[T]{db: db, now: time.Now}
}

// WithClock returns a copy of the store that uses now for DeleteExpired.
func (s *Store[T]) WithClock(now func() time.Time) *Store[T] {
	return &Store[T]{db: s.db, now: now}
}

func (s *Store[T]) Fetch(ctx context.Context, id string) (session.Data[T], error) {
	var (
		data    session.Data[T]
		payload []byte
	)

	err := s.db.QueryRow(ctx, fetchQuery, id).Scan(
		&data.ID,
		&data.AbsoluteDeadline,
		&data.IdleDeadline,
		&data.RenewalDeadline,
		&data.IsRetired,
		&data.GroupID,
		&payload,
	)
	if pg.IsNotFoundError(err) {
		return data, session.ErrNotFound
	}
	if err != nil {
		return data, errors.Join(ErrFetch, err)
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &data.Values); err != nil {
			return data, errors.Join(ErrDecode, err)
		}
	}
	return data, nil
}

func (s *Store[T]) Save(ctx context.Context, data session.Data[T]) error {
	if data.ID == "" {
		return session.ErrInvalidData
	}

	payload, err := json.Marshal(data.Values)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	_, err = s.db.Exec(ctx, upsertQuery,
		data.ID,
		data.AbsoluteDeadline,
		data.IdleDeadline,
		data.RenewalDeadline,
		data.IsRetired,
		data.GroupID,
		payload,
	)
	if err != nil {
		return errors.Join(ErrSave, err)
	}
	return nil
}

func (s *Store[T]) Retire(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, retireQuery, id); err != nil {
		return errors.Join(ErrRetire, err)
	}
	return nil
}

func (s *Store[T]) RetireGroup(ctx context.Context, groupID string) error {
	if groupID == "" {
		return nil
	}
	if _, err := s.db.Exec(ctx, retireGroupQuery, groupID); err != nil {
		return errors.Join(ErrRetire, err)
	}
	return nil
}

// DeleteExpired removes rows past their absolute or idle deadline.
func (s *Store[T]) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteExpired, s.now())
	if err != nil {
		return 0, errors.Join(ErrCleanup, err)
	}
	return tag.RowsAffected(), nil
}
