package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/scena/pkg/adapters/redis"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	"github.com/aretw0/scena/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ports.RunLayerStoreContract(t, store)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))

	err := store.Save(context.Background(), "canvas", &domain.Document{Layers: []domain.LayerInfo{{ID: "A"}}})
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:item:canvas"))
	assert.True(t, mr.Exists("test:index"))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "doc-ttl", &domain.Document{Layers: []domain.LayerInfo{{ID: "A"}}}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "doc-ttl")

	mr.FastForward(2 * time.Second)
	_, err = store.Load(ctx, "doc-ttl")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	// The index is pruned against the wall clock, not miniredis time.
	time.Sleep(1200 * time.Millisecond)
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_CorruptDocument(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"item:bad", "{not json"))

	_, err := store.Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestRedisStore_ReservedLookingIDs(t *testing.T) {
	_, client := setup(t)
	docs := redis.NewFromClient(client)
	sessions := redis.NewSelectionStore(client)
	ctx := context.Background()

	for _, id := range []string{"index", "lock:canvas", "item:x"} {
		require.NoError(t, docs.Save(ctx, id, &domain.Document{Layers: []domain.LayerInfo{{ID: id}}}))
	}
	require.NoError(t, sessions.Save(ctx, "index", group.Leaves("A")))

	ids, err := docs.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"index", "lock:canvas", "item:x"}, ids)

	doc, err := docs.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "index", doc.Layers[0].ID)

	sel, err := sessions.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, group.Leaves("A"), sel)
	sessionIDs, err := sessions.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"index"}, sessionIDs)
}
