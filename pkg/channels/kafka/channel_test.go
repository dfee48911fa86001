package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	brokers, err := Brokers()
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, brokers)
}

func TestBrokers_Empty(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	_, err := Brokers()
	require.ErrorIs(t, err, ErrNoBrokers)
}
