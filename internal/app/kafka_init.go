package app

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/burger-oms/internal/service/outbox"
)

// initKafkaProducer создаёт producer, если брокеры заданы.
// Возвращает nil, nil для пустого списка брокеров.
func initKafkaProducer(brokers []string, logger *log.Entry) (*kafka.Producer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokers)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, err
	}

	logger.WithField("brokers", brokers).Info("kafka producer initialized")
	return producer, nil
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}

// newOutboxWorker связывает outbox с топиком событий и DLQ.
func newOutboxWorker(repo domain.OutboxRepository, producer *kafka.Producer, cfg Config, logger *log.Entry) *outbox.Worker {
	return outbox.NewWorker(
		repo,
		kafka.NewOutboxPublisher(producer, cfg.KafkaTopic),
		outbox.WithDLQPublisher(kafka.NewDLQPublisher(producer, cfg.KafkaDLQTopic, cfg.KafkaTopic)),
		outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	)
}

// startBackground запускает run в отдельной горутине и возвращает функцию остановки,
// которая отменяет контекст и ждёт завершения.
func startBackground(ctx context.Context, run func(context.Context)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		run(ctx)
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}
