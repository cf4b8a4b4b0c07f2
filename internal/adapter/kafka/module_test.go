package kafka

import (
	"context"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/webstudio/internal/config"
)

func TestNewPublisherFallsBackToLog(t *testing.T) {
	publisher, err := newPublisher(publisherParams{Config: &config.Config{}, Logger: discardLogger()})
	require.NoError(t, err)
	assert.IsType(t, &LogPublisher{}, publisher)
}

func TestNewPublisherUsesKafkaWhenConfigured(t *testing.T) {
	stubProducer(t, func(_ []string, cfg *sarama.Config) (sarama.SyncProducer, error) {
		return mocks.NewSyncProducer(t, cfg), nil
	})

	cfg := &config.Config{KafkaBrokers: []string{"k1:9092"}, OrderEventsTopic: "events"}
	publisher, err := newPublisher(publisherParams{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)

	sync, ok := publisher.(*SyncPublisher)
	require.True(t, ok, "expected *SyncPublisher, got %T", publisher)
	assert.Equal(t, "events", sync.topic)

	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, publisher)
	require.NoError(t, lc.Start(context.Background()))
	require.NoError(t, lc.Stop(context.Background()))
}
