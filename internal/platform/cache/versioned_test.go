package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Count int `json:"count"`
}

func newTestCache(t *testing.T) *Versioned {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewVersioned(client, "test", time.Minute)
}

func TestFetchJSONCachesUntilBump(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return payload{Count: calls}, nil
	}

	key, err := c.BuildKey(ctx, "summary")
	require.NoError(t, err)
	assert.Equal(t, "test:summary:1", key)

	var got payload
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, got.Count)

	require.NoError(t, c.Bump(ctx))
	key, err = c.BuildKey(ctx, "summary")
	require.NoError(t, err)
	assert.Equal(t, "test:summary:2", key)

	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, got.Count)
}

func TestNilClientPassesThrough(t *testing.T) {
	ctx := context.Background()
	c := NewVersioned(nil, "test", time.Minute)
	key, err := c.BuildKey(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "test:a:b", key)

	var got payload
	require.NoError(t, c.FetchJSON(ctx, key, &got, func(context.Context) (any, error) { return payload{Count: 7}, nil }))
	assert.Equal(t, 7, got.Count)
	assert.NoError(t, c.Bump(ctx))
}

func TestNewPingsServer(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), Options{Addr: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	mr.Close()
	_, err = New(context.Background(), Options{Addr: mr.Addr()})
	assert.Error(t, err)
}
