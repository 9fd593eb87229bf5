package session

import "net/http"

// Middleware resolves the session for every request and stores it in the
// request context. Faults never stop the request; they are available through
// ErrorFromContext.
func (m *Manager[T]) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Get(r.Context(), r)

		ctx := WithSession(r.Context(), &sess)
		if err != nil {
			ctx = withFault(ctx, err)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireTrusted rejects requests whose session lookup hit a store or signer
// malfunction. It must run after Middleware.
func (m *Manager[T]) RequireTrusted(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if HasKind(ErrorFromContext(r.Context()), KindNotRecoverable) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}
