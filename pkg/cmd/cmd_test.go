package cmd

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/lexal/lexal-node/pkg/config"
	"github.com/lexal/lexal-node/pkg/nodes/lexal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParsePersistenceProvider(t *testing.T) {
	tests := map[string]string{
		"file:///tmp/data":             "file",
		"./data":                       "file",
		"redis://localhost:6379/0":     "redis",
		"postgres://user@localhost/db": "postgres",
		"postgresql://localhost/db":    "postgresql",
		"mongodb://localhost":          "mongodb",
	}

	for url, want := range tests {
		assert.Equal(t, want, parsePersistenceProvider(url), url)
	}
}

func TestNewPersistence_File(t *testing.T) {
	ctx := context.Background()

	p, err := NewPersistence(ctx, discardLogger(), "file://"+t.TempDir(), config.RedisConfig{})
	require.NoError(t, err)
	require.NoError(t, p.HealthCheck(ctx))
	require.NoError(t, p.Close(ctx))
}

func TestNewPersistence_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	p, err := NewPersistence(ctx, discardLogger(), "redis://"+mr.Addr(), config.RedisConfig{Prefix: "cmd:"})
	require.NoError(t, err)

	defer func() { _ = p.Close(ctx) }()

	require.NoError(t, p.HealthCheck(ctx))
}

func TestNewPersistence_Unsupported(t *testing.T) {
	_, err := NewPersistence(context.Background(), discardLogger(), "mongodb://localhost", config.RedisConfig{})
	require.Error(t, err)
}

func TestNewEventBus(t *testing.T) {
	bus, err := NewEventBus("gochannel", "test", discardLogger())
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NoError(t, bus.Close())

	bus, err = NewEventBus("none", "test", discardLogger())
	require.NoError(t, err)
	assert.Nil(t, bus)

	_, err = NewEventBus("rabbitmq", "test", discardLogger())
	require.Error(t, err)
}

func TestNewEventBus_KafkaWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	_, err := NewEventBus("kafka", "test", discardLogger())
	require.Error(t, err)
}

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(discardLogger())
	require.NoError(t, err)

	_, ok := reg.Node(lexal.NodeTypeID)
	assert.True(t, ok)
}

func TestNewTracer_Disabled(t *testing.T) {
	tracer, shutdown, err := NewTracer(context.Background(), false, "test")
	require.NoError(t, err)
	require.NotNil(t, tracer)
	require.NoError(t, shutdown(context.Background()))
}
