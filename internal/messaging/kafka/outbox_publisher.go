package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// OutboxTopicPublisher публикует outbox-сообщения в заданный Kafka topic.
type OutboxTopicPublisher struct {
	producer *Producer
	topic    string
	// originTopic заполняется только для DLQ.
	originTopic string
}

// Envelope — формат сообщения в топиках событий и DLQ.
type Envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishedAt   time.Time       `json:"published_at"`
}

// NewOutboxPublisher создаёт Kafka-паблишер для transactional outbox.
func NewOutboxPublisher(producer *Producer, topic string) domain.OutboxPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OutboxTopicPublisher{
		producer: producer,
		topic:    topic,
	}
}

// NewDLQPublisher создаёт паблишер dead letter queue: сообщения помечаются заголовками
// с исходным топиком и временем сбоя.
func NewDLQPublisher(producer *Producer, topic, originTopic string) domain.OutboxPublisher {
	if topic == "" {
		topic = TopicDeadLetterQueue
	}
	if originTopic == "" {
		originTopic = TopicOrderEvents
	}
	return &OutboxTopicPublisher{
		producer:    producer,
		topic:       topic,
		originTopic: originTopic,
	}
}

func (p *OutboxTopicPublisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka outbox publisher is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	key := event.AggregateID
	if key == "" {
		key = event.ID
	}

	envelope := Envelope{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       json.RawMessage(event.Payload),
		PublishedAt:   time.Now().UTC(),
	}
	if len(envelope.Payload) == 0 {
		envelope.Payload = json.RawMessage(`null`)
	}

	headers := []sarama.RecordHeader{
		{Key: []byte(HeaderEventType), Value: []byte(event.EventType)},
	}
	if p.originTopic != "" {
		headers = append(headers,
			sarama.RecordHeader{Key: []byte(HeaderOriginalTopic), Value: []byte(p.originTopic)},
			sarama.RecordHeader{Key: []byte(HeaderFailedAt), Value: []byte(envelope.PublishedAt.Format(time.RFC3339Nano))},
		)
	}

	return p.producer.PublishEvent(p.topic, key, envelope, headers...)
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
