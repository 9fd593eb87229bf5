package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func BenchmarkMemoryStore_Save(b *testing.B) {
	store := session.NewMemoryStore[profile](0)
	defer store.Close()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(ctx, liveData("id-"+strconv.Itoa(i%1000), "g"))
	}
}

func BenchmarkMemoryStore_Fetch(b *testing.B) {
	store := session.NewMemoryStore[profile](0)
	defer store.Close()
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		_ = store.Save(ctx, liveData("id-"+strconv.Itoa(i), ""))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Fetch(ctx, "id-"+strconv.Itoa(i%1000))
	}
}

func benchManager(b *testing.B) *session.Manager[profile] {
	b.Helper()
	mgr, err := session.New[profile](testConfig())
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func BenchmarkManager_GetFresh(b *testing.B) {
	mgr := benchManager(b)
	ctx := context.Background()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mgr.Get(ctx, r)
	}
}

func BenchmarkManager_GetExisting(b *testing.B) {
	mgr := benchManager(b)
	ctx := context.Background()

	sess, _ := mgr.Get(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	header, err := mgr.Set(ctx, &sess, false)
	if err != nil {
		b.Fatal(err)
	}
	c, err := http.ParseSetCookie(header)
	if err != nil {
		b.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mgr.Get(ctx, r)
	}
}

func BenchmarkManager_SetRegenerate(b *testing.B) {
	mgr := benchManager(b)
	ctx := context.Background()

	sess, _ := mgr.Get(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := mgr.Set(ctx, &sess, false); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mgr.Set(ctx, &sess, true)
	}
}

func BenchmarkMiddleware(b *testing.B) {
	mgr := benchManager(b)
	h := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.ServeHTTP(httptest.NewRecorder(), r)
	}
}
