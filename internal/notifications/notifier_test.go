package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_PublishReachesWiredHub(t *testing.T) {
	rdb := newTestRedis(t)
	notifier := NewNotifier(rdb)
	hub := NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	client, err := hub.Register(7, nil)
	require.NoError(t, err)
	hub.Join(client, PostRoom(3))

	notifier.PublishUser(ctx, 7, []byte(`direct`))
	notifier.PublishPost(ctx, 3, []byte(`room`))

	assert.Eventually(t, func() bool {
		return len(client.Send) == 2
	}, time.Second, 10*time.Millisecond)

	_ = hub.Shutdown(context.Background())
}

func TestNotifier_PublishToEmptyRoomIsHarmless(t *testing.T) {
	rdb := newTestRedis(t)
	notifier := NewNotifier(rdb)
	hub := NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, notifier))

	notifier.PublishUser(ctx, 99, []byte(`nobody home`))

	client, err := hub.Register(7, nil)
	require.NoError(t, err)
	notifier.PublishUser(ctx, 7, []byte(`hello`))

	assert.Eventually(t, func() bool {
		return len(client.Send) == 1
	}, time.Second, 10*time.Millisecond)

	_ = hub.Shutdown(context.Background())
}

func TestNotifier_NilClientIsNoop(t *testing.T) {
	notifier := NewNotifier(nil)
	ctx := context.Background()

	notifier.PublishUser(ctx, 1, []byte(`x`))
	notifier.PublishPost(ctx, 1, []byte(`x`))
	assert.NoError(t, notifier.StartPatternSubscriber(ctx, func(string, string) {}))
}
