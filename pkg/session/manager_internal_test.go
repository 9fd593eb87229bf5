package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

func TestManager_Set_UnrenderableCookie(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Secret = "k"
	mgr, err := New[struct{}](cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mgr.Close() })

	// a name that slipped past validation must not produce a silent empty cookie
	mgr.cfg.CookieName = "my sid"

	ctx := context.Background()
	sess, err := mgr.Get(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	before := sess

	header, err := mgr.Set(ctx, &sess, false)
	assert.Empty(t, header)
	require.Error(t, err)
	assert.True(t, HasKind(err, KindNotRecoverable))
	assert.ErrorIs(t, err, cookie.ErrInvalidCookie)
	assert.Equal(t, before, sess, "session is left unchanged on failure")
	assert.True(t, sess.IsNew)
}
