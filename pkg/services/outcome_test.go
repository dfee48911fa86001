package services

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/lexal/lexal-node/pkg/channels/gochannel"
	"github.com/lexal/lexal-node/pkg/eventbus"
	"github.com/lexal/lexal-node/pkg/nodes/lexal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestLogRunOutcomes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	defer func() { _ = bus.Close() }()

	var out syncBuffer

	require.NoError(t, LogRunOutcomes(ctx, bus, slog.New(slog.NewTextHandler(&out, nil))))

	service := setupRun(t, WithPublisher(bus))

	okRun, err := service.Execute(ctx, lexal.NodeTypeID, map[string]any{"str_field": "2"})
	require.NoError(t, err)

	badRun, err := service.Execute(ctx, lexal.NodeTypeID, map[string]any{"str_field": "x"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		logged := out.String()

		return strings.Contains(logged, "Node run completed") &&
			strings.Contains(logged, okRun.ID) &&
			strings.Contains(logged, "Node run failed") &&
			strings.Contains(logged, badRun.ID)
	}, 5*time.Second, 10*time.Millisecond)

	assert.Contains(t, out.String(), "level=WARN")
}
