package app

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
)

func TestInitKafkaProducer_EmptyBrokers(t *testing.T) {
	producer, err := initKafkaProducer(nil, log.WithField("test", "kafka"))

	require.NoError(t, err)
	assert.Nil(t, producer)
}

func TestInitKafkaProducer_InvalidBrokers(t *testing.T) {
	producer, err := initKafkaProducer([]string{"invalid-broker:9999"}, log.WithField("test", "kafka"))

	require.Error(t, err)
	assert.Nil(t, producer)
}

func TestCloseKafka_NilProducer(_ *testing.T) {
	closeKafka(nil, log.WithField("test", "kafka"))
}

func TestNewOutboxWorker_PublishesPendingEvents(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndSucceed()
	producer := kafka.NewProducerFromSync(mockProducer, log.WithField("test", "kafka"))
	defer closeKafka(producer, log.WithField("test", "kafka"))

	repo := memory.NewOutboxRepository()
	_, err := repo.Enqueue(context.Background(), domain.OutboxMessage{
		AggregateType: domain.OutboxAggregateOrder,
		AggregateID:   "order-1",
		EventType:     domain.EventTypeOrderCreated,
		Payload:       []byte(`{"order_id":"order-1"}`),
	})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.OutboxRetryDelay = 0
	worker := newOutboxWorker(repo, producer, cfg, log.WithField("test", "outbox"))
	worker.ProcessOnce(context.Background())

	assert.Empty(t, repo.AllPending())
}

func TestStartBackground_StopsAndWaits(t *testing.T) {
	stopped := make(chan struct{})
	stop := startBackground(context.Background(), func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	})

	stop()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("background run did not return after stop")
	}
}
