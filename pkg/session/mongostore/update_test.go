package mongostore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestSaveUpdate(t *testing.T) {
	t.Parallel()
	now := time.Now()

	t.Run("retired flag is only raised", func(t *testing.T) {
		t.Parallel()
		upd := saveUpdate(session.Data[int]{ID: "a", AbsoluteDeadline: now, GroupID: "g", Values: 3})

		assert.Equal(t, bson.E{Key: "$max", Value: bson.D{{Key: "is_retired", Value: false}}}, upd[1])
		set := upd[0].Value.(bson.D)
		for _, e := range set {
			assert.NotEqual(t, "is_retired", e.Key)
		}
		assert.Contains(t, set, bson.E{Key: "group_id", Value: "g"})
		assert.Contains(t, set, bson.E{Key: "values", Value: 3})
		assert.Len(t, upd, 2)
	})

	t.Run("empty group is unset", func(t *testing.T) {
		t.Parallel()
		upd := saveUpdate(session.Data[int]{ID: "a"})

		assert.Len(t, upd, 3)
		assert.Equal(t, "$unset", upd[2].Key)
	})
}
