package mongostore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/mongo"
	"github.com/dmitrymomot/sessionkit/pkg/session"
	"github.com/dmitrymomot/sessionkit/pkg/session/mongostore"
)

type profile struct {
	User   string `bson:"user"`
	Visits int    `bson:"visits"`
}

func setupStore(t *testing.T) *mongostore.Store[profile] {
	t.Helper()

	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("MONGODB_URL not set")
	}
	ctx := context.Background()

	cfg := mongo.Config{
		ConnectionURL:  url,
		Database:       "sessionkit_test",
		Collection:     "sessions_" + t.Name(),
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    5,
		RetryAttempts:  2,
		RetryInterval:  100 * time.Millisecond,
	}
	client, err := mongo.Connect(ctx, cfg, nil)
	require.NoError(t, err)

	coll := mongo.Collection(client, cfg)
	t.Cleanup(func() {
		_ = coll.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	store := mongostore.New[profile](coll)
	require.NoError(t, store.EnsureIndexes(ctx))
	require.NoError(t, store.EnsureIndexes(ctx), "indexes are idempotent")
	return store
}

func record(id, group string) session.Data[profile] {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return session.Data[profile]{
		ID:               id,
		AbsoluteDeadline: now.Add(time.Hour),
		IdleDeadline:     now.Add(15 * time.Minute),
		RenewalDeadline:  now.Add(30 * time.Minute),
		GroupID:          group,
		Values:           profile{User: "dave", Visits: 4},
	}
}

func TestStore_SaveFetch(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	d := record("a", "g")
	require.NoError(t, store.Save(ctx, d))

	got, err := store.Fetch(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, d.Values, got.Values)
	assert.True(t, d.IdleDeadline.Equal(got.IdleDeadline))
	assert.Equal(t, "g", got.GroupID)

	d.Values.Visits = 5
	require.NoError(t, store.Save(ctx, d))
	got, err = store.Fetch(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Values.Visits)

	_, err = store.Fetch(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.ErrorIs(t, store.Save(ctx, session.Data[profile]{}), session.ErrInvalidData)
}

func TestStore_Retire(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, record("a", "g1")))
	require.NoError(t, store.Save(ctx, record("b", "g1")))
	require.NoError(t, store.Save(ctx, record("c", "g2")))

	require.NoError(t, store.Retire(ctx, "c"))
	require.NoError(t, store.RetireGroup(ctx, "g1"))

	for _, id := range []string{"a", "b", "c"} {
		got, err := store.Fetch(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.IsRetired, id)
	}
	assert.NoError(t, store.Retire(ctx, "missing"))

	require.NoError(t, store.Save(ctx, record("a", "g1")))
	got, err := store.Fetch(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.IsRetired, "save keeps a retired document retired")
}

func TestStore_DeleteExpired(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	idle := record("idle", "")
	idle.IdleDeadline = time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(ctx, idle))
	require.NoError(t, store.Save(ctx, record("live", "")))

	n, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.Fetch(ctx, "idle")
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.Fetch(ctx, "live")
	assert.NoError(t, err)
}
