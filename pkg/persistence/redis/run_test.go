package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lexal/lexal-node/pkg/persistence/redis"
	"github.com/lexal/lexal-node/pkg/testutil"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *backend.Client, *redis.Persistence) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	p := redis.NewFromClient(client, opts...)

	t.Cleanup(func() {
		_ = p.Close(context.Background())
	})

	return mr, client, p
}

func TestRunRepository_Contract(t *testing.T) {
	_, _, p := setupRedis(t)

	testutil.RunRepositoryContract(t, p.RunRepository())
}

func TestRunRepository_Prefix(t *testing.T) {
	mr, _, p := setupRedis(t, redis.WithPrefix("test:"))
	run := testutil.CreateTestRun(testutil.WithRunID("run-1"), testutil.WithNodeType("node-a"))

	require.NoError(t, p.RunRepository().Save(context.Background(), run))

	assert.True(t, mr.Exists("test:run:run-1"))
	assert.True(t, mr.Exists("test:node:node-a:runs"))
}

func TestRunRepository_TTLPrunesIndex(t *testing.T) {
	mr, client, p := setupRedis(t, redis.WithTTL(time.Minute))
	repo := p.RunRepository()
	ctx := context.Background()

	run := testutil.CreateTestRun(testutil.WithNodeType("node-ttl"))
	require.NoError(t, repo.Save(ctx, run))

	require.NoError(t, repo.SaveResult(ctx, run.ID, map[string]any{"result": 1}))
	assert.Greater(t, mr.TTL("lexal:run:"+run.ID), time.Duration(0))

	mr.FastForward(2 * time.Minute)

	runs, err := repo.GetByNodeType(ctx, "node-ttl")
	require.NoError(t, err)
	assert.Empty(t, runs)

	indexed, err := client.ZCard(ctx, "lexal:node:node-ttl:runs").Result()
	require.NoError(t, err)
	assert.Zero(t, indexed)
}

func TestPersistence_NewPersistence(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	p, err := redis.NewPersistence(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)

	require.NoError(t, p.HealthCheck(ctx))
	require.NoError(t, p.Close(ctx))

	_, err = redis.NewPersistence(ctx, "not a url")
	require.Error(t, err)
}
