package redisstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/adapters/redisstore"
	"github.com/andrescamacho/hive-go/internal/application/colony"
	"github.com/andrescamacho/hive-go/pkg/utils"
)

// Runs against a live server only: HIVE_TEST_REDIS_ADDR=localhost:6379
func newStore(t *testing.T) *redisstore.Store {
	t.Helper()
	addr := os.Getenv("HIVE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HIVE_TEST_REDIS_ADDR not set")
	}

	client, err := redisstore.NewClient("", addr, "", 0)
	require.NoError(t, err)
	require.NoError(t, client.Ping(context.Background()).Err())

	store := redisstore.NewStore(client, utils.GenerateRunID("test"))
	t.Cleanup(func() {
		_ = store.Clear(context.Background())
		_ = client.Close()
	})
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, colony.ErrMemoryNotFound)

	require.NoError(t, store.Save(ctx, []byte(`{"version":"1.0.0"}`)))
	blob, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"version":"1.0.0"}`, string(blob))

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, colony.ErrMemoryNotFound)
}

func TestNewClient_ParsesURL(t *testing.T) {
	client, err := redisstore.NewClient("redis://:secret@cache:6380/3", "", "", 0)
	require.NoError(t, err)
	defer client.Close()

	opts := client.Options()
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)

	_, err = redisstore.NewClient("http://nope", "", "", 0)
	assert.Error(t, err)
}

func TestNewStore_NamespacesKey(t *testing.T) {
	client, err := redisstore.NewClient("", "localhost:6379", "", 0)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "hive:memory:main", redisstore.NewStore(client, "main").Key())
}
