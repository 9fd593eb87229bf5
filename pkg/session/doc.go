// Package session manages signed, server-side sessions carried in a cookie.
//
// Every record has three deadlines. The absolute deadline is fixed when the
// record is created and is never moved. The idle deadline slides forward on
// each successful access. When the renewal deadline passes, the record is
// replaced by a fresh one under the same id. A record can also be retired:
// regeneration retires the previous id so a captured cookie cannot be replayed,
// and all records produced from one original session share a GroupID, which
// allows invalidating the whole chain at once.
//
// # Architecture
//
//	cookie "<id>.<sig>" ─► Signer.Verify ─► Store.Fetch ─► deadline checks
//	                                                         │
//	                       fresh session ◄── any anomaly ────┤
//	                       renewed record ◄── renewal due ───┤
//	                       idle extended  ◄── otherwise ─────┘
//
// Manager.Get never fails the request. A missing, malformed, tampered,
// unknown, retired or expired cookie yields a fresh unsaved session. Tampering
// is reported as KindBadSignature and store malfunctions as KindNotRecoverable,
// both inside an Errors value that supports errors.Is and Has.
//
// Manager.Set writes the record and returns the Set-Cookie header value. With
// regenerable set on a session that was already saved, it generates a new id,
// retires the old one and then saves, in that order.
//
// # Usage
//
//	type Profile struct {
//	    UserID string `json:"user_id"`
//	}
//
//	cfg := session.DefaultConfig()
//	cfg.Secret = os.Getenv("SESSION_SECRET")
//
//	mgr, err := session.New[Profile](cfg, session.WithStore[Profile](store))
//	if err != nil {
//	    return err
//	}
//
//	func login(w http.ResponseWriter, r *http.Request) {
//	    sess, err := mgr.Get(r.Context(), r)
//	    if session.HasKind(err, session.KindNotRecoverable) {
//	        http.Error(w, "try again", http.StatusServiceUnavailable)
//	        return
//	    }
//	    sess.Values().UserID = userID
//	    if err := mgr.Save(r.Context(), w, &sess, true); err != nil {
//	        // no cookie was written
//	    }
//	}
//
// Middleware resolves the session once per request and puts it in the
// context; RequireTrusted turns store faults into 503 responses.
//
//	r := chi.NewRouter()
//	r.Use(mgr.Middleware)
//	r.With(mgr.RequireTrusted).Post("/login", func(w http.ResponseWriter, r *http.Request) {
//	    sess, _ := session.FromContext[Profile](r.Context())
//	    sess.Values().UserID = userID
//	    _ = mgr.Save(r.Context(), w, sess, true)
//	})
//
// Logging out of every device retires the whole chain:
//
//	err := mgr.RetireGroup(ctx, sess.Data.GroupID)
//	if errors.Is(err, session.ErrGroupUnsupported) {
//	    // the store cannot enumerate a group
//	}
//
// # Stores
//
// MemoryStore ships with this package. Adapters for Redis, PostgreSQL and
// MongoDB live in the redisstore, pgstore and mongostore subpackages. Stores
// that implement GroupRetirer support Manager.RetireGroup; those implementing
// ExpiredCleaner are swept by Manager.Cleanup.
//
// Retirement is sticky in every store. A request that still holds a session
// from before regeneration may save it after the new id is issued; the old
// id stays retired and the next Get on it starts over.
//
// # Configuration
//
// Config carries env tags for use with the config package. Secret may hold
// several comma-separated values to rotate keys. Validate rejects missing
// secrets, non-positive offsets and cookie names or paths that net/http
// cannot render.
//
//	var cfg session.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Get reports faults through an Errors value while still returning a usable
// session. Set returns a single *Error and an empty cookie; sess is left
// untouched so the caller may retry. Sentinels usable with errors.Is:
//
//   - ErrBadSignature     - cookie signature did not verify
//   - ErrNotRecoverable   - store, id generator or cookie rendering failed
//   - ErrNotFound         - returned by stores for unknown ids
//   - ErrInvalidData      - nil session or empty id handed to a store
//   - ErrInvalidConfig    - Config.Validate failed
//   - ErrGroupUnsupported - RetireGroup on a store without GroupRetirer
package session
