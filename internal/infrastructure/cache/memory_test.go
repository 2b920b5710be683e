package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meet-agent/pkg/ai"
)

var _ ai.ResponseCache = (*MemoryStore)(nil)
var _ ai.ResponseCache = (*RedisStore)(nil)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, "k", "v", time.Minute)
	v, ok := store.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	store.Delete(ctx, "k")
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, "gone", "v", -time.Second)

	_, ok := store.Get(ctx, "gone")
	assert.False(t, ok)
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
