package session

import (
	"log/slog"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Option is a functional option for configuring the Manager
type Option[T any] func(*Manager[T])

// WithStore sets the session store. Defaults to a MemoryStore owned by the manager.
func WithStore[T any](store Store[T]) Option[T] {
	return func(m *Manager[T]) {
		m.store = store
	}
}

// WithSigner replaces the HMAC signer built from Config.Secret
func WithSigner[T any](signer Signer) Option[T] {
	return func(m *Manager[T]) {
		m.signer = signer
	}
}

// WithClock sets the time source
func WithClock[T any](clock Clock) Option[T] {
	return func(m *Manager[T]) {
		m.clock = clock
	}
}

// WithLogger sets the logger for session faults and transitions
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(m *Manager[T]) {
		m.log = log
	}
}

// WithCookieOptions overrides cookie attributes derived from Config
func WithCookieOptions[T any](opts ...cookie.Option) Option[T] {
	return func(m *Manager[T]) {
		m.cookieOpts = append(m.cookieOpts, opts...)
	}
}

// WithRenewal sets how Values move into a renewed record.
// The default keeps them unchanged.
func WithRenewal[T any](fn func(old T) T) Option[T] {
	return func(m *Manager[T]) {
		if fn != nil {
			m.renew = fn
		}
	}
}

// WithIDGenerator replaces the random session id source
func WithIDGenerator[T any](fn func() (string, error)) Option[T] {
	return func(m *Manager[T]) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithGroupIDGenerator replaces the group id source (uuid v4 by default)
func WithGroupIDGenerator[T any](fn func() string) Option[T] {
	return func(m *Manager[T]) {
		if fn != nil {
			m.newGroupID = fn
		}
	}
}
