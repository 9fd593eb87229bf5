package redisstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// hashTag returns the part of a key Redis Cluster hashes on.
func hashTag(key string) string {
	open := strings.IndexByte(key, '{')
	if open < 0 {
		return key
	}
	end := strings.IndexByte(key[open+1:], '}')
	if end <= 0 {
		return key
	}
	return key[open+1 : open+1+end]
}

func TestKeyLayout(t *testing.T) {
	t.Parallel()

	s := New[struct{}](nil, WithPrefix[struct{}]("app"))

	assert.Equal(t, "app:{abc}", s.key("abc"))
	assert.Equal(t, "app:retired:{abc}", s.tombstoneKey("abc"))
	assert.Equal(t, "app:group:{g1}", s.groupKey("g1"))

	keys := s.recordKeys("abc")
	assert.Len(t, keys, 2)
	assert.Equal(t, hashTag(keys[0]), hashTag(keys[1]), "record and tombstone share a slot")
	assert.Equal(t, "abc", hashTag(keys[0]))

	assert.Equal(t, "session:{x}", New[struct{}](nil).key("x"))
}
