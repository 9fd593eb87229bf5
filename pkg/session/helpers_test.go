package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

type profile struct {
	User   string `json:"user"`
	Visits int    `json:"visits"`
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Now().Truncate(time.Second)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Fetch(ctx context.Context, id string) (session.Data[profile], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(session.Data[profile]), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, data session.Data[profile]) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockStore) Retire(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// testConfig mirrors the reference scenario: secret "k", 1h absolute, 15m idle, 30m renewal.
func testConfig() session.Config {
	cfg := session.DefaultConfig()
	cfg.Secret = "k"
	cfg.AbsoluteDeadlineOffset = time.Hour
	cfg.IdleDeadlineOffset = 15 * time.Minute
	cfg.RenewalDeadlineOffset = 30 * time.Minute
	cfg.CleanupInterval = 0
	return cfg
}

type fixture struct {
	mgr   *session.Manager[profile]
	store *session.MemoryStore[profile]
	clock *fakeClock
}

func setupManager(t *testing.T, opts ...session.Option[profile]) fixture {
	t.Helper()

	store := session.NewMemoryStore[profile](0)
	t.Cleanup(func() { _ = store.Close() })
	clock := newFakeClock()

	all := append([]session.Option[profile]{
		session.WithStore[profile](store),
		session.WithClock[profile](clock),
	}, opts...)

	mgr, err := session.New(testConfig(), all...)
	require.NoError(t, err)

	return fixture{mgr: mgr, store: store, clock: clock}
}

// requestWith builds a request carrying the cookie from a Set-Cookie header.
func requestWith(t *testing.T, setCookie string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if setCookie == "" {
		return r
	}
	c, err := http.ParseSetCookie(setCookie)
	require.NoError(t, err)
	r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	return r
}

func requestWithValue(name, value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: name, Value: value})
	return r
}
