package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// profile is the per-session payload of the demo.
type profile struct {
	User   string `json:"user,omitempty" bson:"user,omitempty"`
	Visits int    `json:"visits" bson:"visits"`
}

type sessionView struct {
	Session          string    `json:"session"`
	Group            string    `json:"group,omitempty"`
	User             string    `json:"user,omitempty"`
	Visits           int       `json:"visits"`
	IsNew            bool      `json:"is_new"`
	AbsoluteDeadline time.Time `json:"absolute_deadline"`
	IdleDeadline     time.Time `json:"idle_deadline"`
	RenewalDeadline  time.Time `json:"renewal_deadline"`
}

type handlers struct {
	mgr *session.Manager[profile]
	log *slog.Logger
}

func newRouter(mgr *session.Manager[profile], log *slog.Logger, checks ...func(context.Context) error) http.Handler {
	h := &handlers{mgr: mgr, log: logger.OrNop(log)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, checks...))

	r.Group(func(r chi.Router) {
		r.Use(mgr.Middleware, mgr.RequireTrusted)

		r.Get("/", h.show)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.Post("/logout/all", h.logoutAll)
	})

	return r
}

// show counts the visit and persists the session, which also makes the
// sliding idle deadline durable.
func (h *handlers) show(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext[profile](r.Context())
	wasNew := sess.IsNew

	sess.Values().Visits++
	if err := h.mgr.Save(r.Context(), w, sess, false); err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view(sess, wasNew))
}

// login rotates the session id to defeat fixation. There is no credential check.
func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.PostFormValue("user"))
	if user == "" {
		http.Error(w, "user is required", http.StatusBadRequest)
		return
	}

	sess := session.MustFromContext[profile](r.Context())
	wasNew := sess.IsNew
	sess.Values().User = user

	if err := h.mgr.Save(r.Context(), w, sess, true); err != nil {
		h.fail(w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "user logged in", logger.SessionID(sess.ID()), logger.GroupID(sess.Data.GroupID))
	writeJSON(w, http.StatusOK, view(sess, wasNew))
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext[profile](r.Context())
	if err := h.mgr.Destroy(r.Context(), w, sess); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// logoutAll retires every session sharing the caller's group.
func (h *handlers) logoutAll(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFromContext[profile](r.Context())
	if sess.IsNew {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.mgr.RetireGroup(r.Context(), sess.Data.GroupID); err != nil {
		if errors.Is(err, session.ErrGroupUnsupported) {
			http.Error(w, err.Error(), http.StatusNotImplemented)
			return
		}
		h.fail(w, r, err)
		return
	}
	if err := h.mgr.Destroy(r.Context(), w, sess); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "session operation failed", logger.Error(err))
	http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
}

func view(sess *session.Session[profile], wasNew bool) sessionView {
	id := sess.ID()
	if len(id) > 8 {
		id = id[:8]
	}
	return sessionView{
		Session:          id,
		Group:            sess.Data.GroupID,
		User:             sess.Data.Values.User,
		Visits:           sess.Data.Values.Visits,
		IsNew:            wasNew,
		AbsoluteDeadline: sess.Data.AbsoluteDeadline,
		IdleDeadline:     sess.Data.IdleDeadline,
		RenewalDeadline:  sess.Data.RenewalDeadline,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
