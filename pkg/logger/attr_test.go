package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
}

func TestErrors(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	attr := logger.Errors(nil, errors.New("a"), errors.New("b"))
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "1", g[0].Key)
	assert.Equal(t, "2", g[1].Key)
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.SessionID(""))
	assert.Equal(t, "short", logger.SessionID("short").Value.String())

	attr := logger.SessionID("abcdefghijklmnopqrstuvwxyz")
	assert.Equal(t, "session_id", attr.Key)
	assert.NotContains(t, attr.Value.String(), "ijklmnop")
	assert.Contains(t, attr.Value.String(), "abcdefgh")
}

func TestGroupID(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.GroupID(""))
	assert.Equal(t, "g-1", logger.GroupID("g-1").Value.String())
}
