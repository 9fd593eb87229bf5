package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// CookieReader is the part of an incoming request the manager reads.
// *http.Request satisfies it.
type CookieReader interface {
	Cookie(name string) (*http.Cookie, error)
}

// Manager runs the session lifecycle: verification, expiry, renewal and regeneration.
// It holds no per-request state and is safe for concurrent use.
type Manager[T any] struct {
	cfg        Config
	store      Store[T]
	ownsStore  bool
	signer     Signer
	clock      Clock
	log        *slog.Logger
	cookieOpts []cookie.Option
	renew      func(T) T
	newID      func() (string, error)
	newGroupID func() string
}

// New creates a session manager. The configuration is validated first.
func New[T any](cfg Config, opts ...Option[T]) (*Manager[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Manager[T]{
		cfg:        cfg,
		clock:      SystemClock,
		renew:      func(v T) T { return v },
		newID:      generateID,
		newGroupID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.log = logger.OrNop(m.log).With(logger.Component("session"))

	if m.signer == nil {
		signer, err := cookie.NewSigner(cfg.Secrets()...)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		m.signer = signer
	}

	if m.store == nil {
		m.store = newMemoryStore[T](cfg.CleanupInterval, m.clock.Now)
		m.ownsStore = true
	}

	base := []cookie.Option{
		cookie.WithPath(cfg.CookiePath),
		cookie.WithDomain(cfg.CookieDomain),
		cookie.WithSecure(cfg.SecureCookies),
	}
	m.cookieOpts = append(base, m.cookieOpts...)

	return m, nil
}

// Config returns the configuration the manager was built with
func (m *Manager[T]) Config() Config {
	return m.cfg
}

// Get resolves the session for an incoming request. It always returns a usable
// session; anomalies yield a fresh, unsaved one. The error is nil or an Errors
// value that callers must check before trusting the session.
//
// Get does not write to the store: idle extension and renewal become durable on the next Set.
func (m *Manager[T]) Get(ctx context.Context, r CookieReader) (Session[T], error) {
	now := m.clock.Now()
	var errs Errors

	raw, err := cookie.Value(r, m.cfg.CookieName)
	if err != nil {
		return m.fresh(ctx, now, errs)
	}

	id, sig, err := cookie.Split(raw)
	if err != nil {
		m.log.DebugContext(ctx, "malformed session cookie", logger.Event("session.malformed"))
		return m.fresh(ctx, now, errs)
	}

	if !m.signer.Verify(id, sig) {
		m.log.WarnContext(ctx, "session signature mismatch",
			logger.Event("session.bad_signature"),
			logger.SessionID(id),
		)
		errs = append(errs, newError(KindBadSignature, nil))
		return m.fresh(ctx, now, errs)
	}

	data, err := m.store.Fetch(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		m.log.DebugContext(ctx, "session not found", logger.SessionID(id))
		return m.fresh(ctx, now, errs)
	case err != nil:
		m.log.ErrorContext(ctx, "failed to fetch session",
			logger.Event("session.fetch_failed"),
			logger.SessionID(id),
			logger.Error(err),
		)
		errs = append(errs, newError(KindNotRecoverable, err))
		return m.fresh(ctx, now, errs)
	}

	if !data.IsUsable(now) {
		m.log.DebugContext(ctx, "discarding unusable session",
			logger.SessionID(id),
			slog.Bool("retired", data.IsRetired),
		)
		return m.fresh(ctx, now, errs)
	}

	if data.IsRenewalDue(now) {
		renewed := m.renewed(data, now)
		m.log.DebugContext(ctx, "session renewed",
			logger.Event("session.renewed"),
			logger.SessionID(id),
			logger.GroupID(renewed.GroupID),
		)
		return Session[T]{Sig: sig, Data: renewed}, nil
	}

	data.IdleDeadline = now.Add(m.cfg.IdleDeadlineOffset)
	return Session[T]{Sig: sig, Data: data}, nil
}

// Set persists the session and returns the Set-Cookie header value.
// With regenerable set on a previously saved session the id is replaced and
// the old one retired before the new record is written.
// On failure the returned cookie is empty, the error is NotRecoverable and sess is left unchanged.
func (m *Manager[T]) Set(ctx context.Context, sess *Session[T], regenerable bool) (string, error) {
	if sess == nil {
		return "", newError(KindNotRecoverable, ErrInvalidData)
	}

	data := sess.Data
	if data.GroupID == "" {
		data.GroupID = m.newGroupID()
	}

	if data.ID == "" || (regenerable && !sess.IsNew) {
		oldID := data.ID
		newID, err := m.newID()
		if err != nil {
			m.log.ErrorContext(ctx, "failed to generate session id", logger.Error(err))
			return "", newError(KindNotRecoverable, err)
		}

		if oldID != "" {
			if err := m.store.Retire(ctx, oldID); err != nil {
				m.log.ErrorContext(ctx, "failed to retire session",
					logger.Event("session.retire_failed"),
					logger.SessionID(oldID),
					logger.Error(err),
				)
				return "", newError(KindNotRecoverable, err)
			}
			m.log.DebugContext(ctx, "session regenerated",
				logger.Event("session.regenerated"),
				logger.SessionID(oldID),
				logger.GroupID(data.GroupID),
			)
		}

		data.ID = newID
		data.IsRetired = false
	}

	if err := m.store.Save(ctx, data); err != nil {
		m.log.ErrorContext(ctx, "failed to save session",
			logger.Event("session.save_failed"),
			logger.SessionID(data.ID),
			logger.Error(err),
		)
		return "", newError(KindNotRecoverable, err)
	}

	sig := m.signer.Sign(data.ID)
	header := m.cookie(data, sig)
	if header == "" {
		m.log.ErrorContext(ctx, "session cookie could not be rendered",
			logger.SessionID(data.ID),
			slog.String("cookie_name", m.cfg.CookieName),
		)
		return "", newError(KindNotRecoverable, cookie.ErrInvalidCookie)
	}

	sess.Data = data
	sess.Sig = sig
	sess.IsNew = false

	return header, nil
}

// Save calls Set and adds the resulting cookie to the response
func (m *Manager[T]) Save(ctx context.Context, w http.ResponseWriter, sess *Session[T], regenerable bool) error {
	header, err := m.Set(ctx, sess, regenerable)
	if err != nil {
		return err
	}
	w.Header().Add("Set-Cookie", header)
	return nil
}

// Destroy retires the session and expires the cookie on the client
func (m *Manager[T]) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session[T]) error {
	if sess != nil && !sess.IsNew && sess.Data.ID != "" {
		if err := m.store.Retire(ctx, sess.Data.ID); err != nil {
			m.log.ErrorContext(ctx, "failed to destroy session",
				logger.SessionID(sess.Data.ID),
				logger.Error(err),
			)
			return newError(KindNotRecoverable, err)
		}
		sess.Data.IsRetired = true
	}

	w.Header().Add("Set-Cookie", cookie.Expire(m.cfg.CookieName, m.cookieOpts...))
	return nil
}

// RetireGroup invalidates every session in a chain ("log out everywhere")
func (m *Manager[T]) RetireGroup(ctx context.Context, groupID string) error {
	if groupID == "" {
		return nil
	}

	retirer, ok := m.store.(GroupRetirer)
	if !ok {
		return ErrGroupUnsupported
	}

	if err := retirer.RetireGroup(ctx, groupID); err != nil {
		m.log.ErrorContext(ctx, "failed to retire session group", logger.GroupID(groupID), logger.Error(err))
		return newError(KindNotRecoverable, err)
	}

	m.log.InfoContext(ctx, "session group retired", logger.Event("session.group_retired"), logger.GroupID(groupID))
	return nil
}

// Cleanup removes expired records when the store needs explicit collection
func (m *Manager[T]) Cleanup(ctx context.Context) (int64, error) {
	cleaner, ok := m.store.(ExpiredCleaner)
	if !ok {
		return 0, nil
	}
	return cleaner.DeleteExpired(ctx)
}

// Close releases the default memory store. Stores passed with WithStore are left open.
func (m *Manager[T]) Close() error {
	if !m.ownsStore {
		return nil
	}
	if c, ok := m.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (m *Manager[T]) fresh(ctx context.Context, now time.Time, errs Errors) (Session[T], error) {
	id, err := m.newID()
	if err != nil {
		m.log.ErrorContext(ctx, "failed to generate session id", logger.Error(err))
		errs = append(errs, newError(KindNotRecoverable, err))
		id = ""
	}
	return Session[T]{Data: m.newData(id, now), IsNew: true}, errs.Err()
}

func (m *Manager[T]) newData(id string, now time.Time) Data[T] {
	return Data[T]{
		ID:               id,
		AbsoluteDeadline: now.Add(m.cfg.AbsoluteDeadlineOffset),
		IdleDeadline:     now.Add(m.cfg.IdleDeadlineOffset),
		RenewalDeadline:  now.Add(m.cfg.RenewalDeadlineOffset),
	}
}

// renewed keeps the id and absolute deadline, links the group and resets the other deadlines.
func (m *Manager[T]) renewed(old Data[T], now time.Time) Data[T] {
	data := m.newData(old.ID, now)
	data.AbsoluteDeadline = old.AbsoluteDeadline
	data.GroupID = old.GroupID
	if data.GroupID == "" {
		data.GroupID = m.newGroupID()
	}
	data.Values = m.renew(old.Values)
	return data
}

func (m *Manager[T]) cookie(data Data[T], sig string) string {
	maxAge := int(data.AbsoluteDeadline.Sub(m.clock.Now()) / time.Second)
	if maxAge <= 0 {
		maxAge = -1
	}
	opts := append(m.cookieOpts[:len(m.cookieOpts):len(m.cookieOpts)], cookie.WithMaxAge(maxAge))
	return cookie.Format(m.cfg.CookieName, cookie.Join(data.ID, sig), opts...)
}

// generateID creates a cryptographically secure session id
func generateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrIDGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
