package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/treeoracle/pkg/adapters/redis"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunSampleStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := redis.NewFromClient(client,
		redis.WithTTL(1*time.Second),
		redis.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()
	sample := &domain.Sample{ID: "sample-ttl", Grammar: "logical", Tree: domain.Leaf("x")}

	require.NoError(t, store.Save(ctx, sample))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, sample.ID)

	// Expire the key in miniredis and advance the index clock past the TTL.
	mr.FastForward(2 * time.Second)
	now = now.Add(2 * time.Second)

	_, err = store.Load(ctx, sample.ID)
	assert.ErrorIs(t, err, domain.ErrSampleNotFound)

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.Save(ctx, &domain.Sample{ID: "my-sample", Tree: domain.Leaf("y")})
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:s:my-sample"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:_idx"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, "my-sample")
}

func TestRedisStore_DefaultPrefixAndPing(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.Save(ctx, &domain.Sample{ID: "s1", Tree: domain.Leaf("x")}))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"s:s1"))

	assert.Error(t, store.Save(ctx, &domain.Sample{}))
}

func TestRedisStore_IDsCannotCollideWithIndex(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	for _, id := range []string{"index", "_idx", "s:_idx"} {
		require.NoError(t, store.Save(ctx, &domain.Sample{ID: id, Tree: domain.Leaf("x")}), id)
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"_idx", "index", "s:_idx"}, ids)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "index", loaded.ID)
}

func TestRedisStore_ListLexicalOrder(t *testing.T) {
	_, client := newClient(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := redis.NewFromClient(client,
		redis.WithTTL(time.Hour),
		redis.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	// Later saves expire later, so index order would be c, b, a.
	for _, id := range []string{"c", "b", "a"} {
		require.NoError(t, store.Save(ctx, &domain.Sample{ID: id, Tree: domain.Leaf("x")}))
		now = now.Add(time.Minute)
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestRedisStore_ServerDown(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	mr.Close()

	_, err := store.Load(context.Background(), "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSampleNotFound)
}
