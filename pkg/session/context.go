package session

import "context"

type (
	sessionContextKey struct{}
	faultContextKey   struct{}
)

// WithSession adds a session to the context
func WithSession[T any](ctx context.Context, sess *Session[T]) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// FromContext retrieves a session from the context
func FromContext[T any](ctx context.Context) (*Session[T], bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*Session[T])
	return sess, ok && sess != nil
}

// MustFromContext retrieves a session from the context or panics
func MustFromContext[T any](ctx context.Context) *Session[T] {
	sess, ok := FromContext[T](ctx)
	if !ok {
		panic("session: not found in context")
	}
	return sess
}

func withFault(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, faultContextKey{}, err)
}

// ErrorFromContext returns the fault Get reported for the current request, if any.
// A non-nil value means the session in the context must not be trusted.
func ErrorFromContext(ctx context.Context) error {
	err, _ := ctx.Value(faultContextKey{}).(error)
	return err
}
