package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/messaging/kafka"
)

const (
	defaultReplayLimit = 100
	defaultIdleTimeout = 2 * time.Second
)

type config struct {
	brokers     []string
	sourceTopic string
	targetTopic string
	limit       int
	execute     bool
	idleTimeout time.Duration
}

type replayMessage struct {
	topic     string
	key       string
	value     []byte
	eventType string
}

type offsetClient interface {
	GetOffset(topic string, partition int32, time int64) (int64, error)
	Partitions(topic string) ([]int32, error)
	Close() error
}

type partitionConsumerSource interface {
	ConsumePartition(topic string, partition int32, offset int64) (sarama.PartitionConsumer, error)
	Close() error
}

type replayProducer interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
	Close() error
}

var newReplayDependencies = func(cfg config) (offsetClient, partitionConsumerSource, replayProducer, error) {
	consumerConfig := sarama.NewConfig()
	consumerConfig.Consumer.Return.Errors = true

	client, err := sarama.NewClient(cfg.brokers, consumerConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create kafka client: %w", err)
	}

	consumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("create kafka consumer: %w", err)
	}

	if !cfg.execute {
		return client, consumer, nil, nil
	}

	producerConfig := sarama.NewConfig()
	producerConfig.Producer.RequiredAcks = sarama.WaitForAll
	producerConfig.Producer.Retry.Max = 5
	producerConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.brokers, producerConfig)
	if err != nil {
		_ = consumer.Close()
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return client, consumer, producer, nil
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fail("dlq replay failed: %v", err)
	}
}

func parseConfig(args []string, getenv func(string) string) (config, error) {
	var (
		brokersRaw string
		cfg        config
	)

	fs := flag.NewFlagSet("dlq-replay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&brokersRaw, "brokers", "", "Kafka brokers as comma-separated list (fallback: KAFKA_BROKERS)")
	fs.StringVar(&cfg.sourceTopic, "source-topic", kafka.TopicDeadLetterQueue, "DLQ source topic")
	fs.StringVar(&cfg.targetTopic, "target-topic", "", "target topic; empty means the x-original-topic header")
	fs.IntVar(&cfg.limit, "limit", defaultReplayLimit, "max number of messages to scan")
	fs.BoolVar(&cfg.execute, "execute", false, "publish replayed events; default is dry-run")
	fs.DurationVar(&cfg.idleTimeout, "idle-timeout", defaultIdleTimeout, "idle timeout per partition")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if strings.TrimSpace(brokersRaw) == "" {
		brokersRaw = getenv("KAFKA_BROKERS")
	}
	cfg.brokers = parseBrokers(brokersRaw)

	var errs []error
	if len(cfg.brokers) == 0 {
		errs = append(errs, errors.New("kafka brokers are required (-brokers or KAFKA_BROKERS)"))
	}
	if strings.TrimSpace(cfg.sourceTopic) == "" {
		errs = append(errs, errors.New("source-topic is required"))
	}
	if cfg.limit <= 0 {
		errs = append(errs, errors.New("limit must be > 0"))
	}
	if cfg.idleTimeout <= 0 {
		errs = append(errs, errors.New("idle-timeout must be > 0"))
	}
	if err := errors.Join(errs...); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func parseBrokers(raw string) []string {
	chunks := strings.Split(raw, ",")
	brokers := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if broker := strings.TrimSpace(chunk); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func run(ctx context.Context, cfg config) error {
	log.WithFields(log.Fields{
		"source_topic": cfg.sourceTopic,
		"target_topic": cfg.targetTopic,
		"limit":        cfg.limit,
		"execute":      cfg.execute,
	}).Info("starting dlq replay")

	client, consumer, producer, err := newReplayDependencies(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if producer != nil {
			_ = producer.Close()
		}
		_ = consumer.Close()
		_ = client.Close()
	}()

	stats, err := runReplay(ctx, cfg, client, consumer, producer)
	if err != nil {
		return err
	}

	mode := "dry-run"
	if cfg.execute {
		mode = "execute"
	}
	log.WithFields(log.Fields{
		"mode":      mode,
		"processed": stats.processed,
		"replayed":  stats.replayed,
		"skipped":   stats.skipped,
	}).Info("dlq replay finished")
	return nil
}

type replayStats struct {
	processed int
	replayed  int
	skipped   int
}

func (s *replayStats) add(other replayStats) {
	s.processed += other.processed
	s.replayed += other.replayed
	s.skipped += other.skipped
}

func runReplay(ctx context.Context, cfg config, client offsetClient, consumer partitionConsumerSource, producer replayProducer) (replayStats, error) {
	var total replayStats
	if cfg.execute && producer == nil {
		return total, errors.New("producer is required in execute mode")
	}

	partitions, err := client.Partitions(cfg.sourceTopic)
	if err != nil {
		return total, fmt.Errorf("get partitions for topic %s: %w", cfg.sourceTopic, err)
	}
	sort.Slice(partitions, func(i, j int) bool { return partitions[i] < partitions[j] })

	for _, partition := range partitions {
		if total.processed >= cfg.limit {
			break
		}
		stats, err := replayPartition(ctx, cfg, client, consumer, producer, partition, cfg.limit-total.processed)
		total.add(stats)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// replayPartition читает партицию от самого старого до текущего последнего offset.
func replayPartition(
	ctx context.Context,
	cfg config,
	client offsetClient,
	consumer partitionConsumerSource,
	producer replayProducer,
	partition int32,
	limit int,
) (replayStats, error) {
	var stats replayStats

	oldest, err := client.GetOffset(cfg.sourceTopic, partition, sarama.OffsetOldest)
	if err != nil {
		return stats, fmt.Errorf("get oldest offset for partition %d: %w", partition, err)
	}
	newest, err := client.GetOffset(cfg.sourceTopic, partition, sarama.OffsetNewest)
	if err != nil {
		return stats, fmt.Errorf("get newest offset for partition %d: %w", partition, err)
	}
	if newest <= oldest {
		return stats, nil
	}

	pc, err := consumer.ConsumePartition(cfg.sourceTopic, partition, oldest)
	if err != nil {
		return stats, fmt.Errorf("consume partition %d: %w", partition, err)
	}
	defer func() { _ = pc.Close() }()

	idle := time.NewTimer(cfg.idleTimeout)
	defer idle.Stop()

	for stats.processed < limit {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case <-idle.C:
			return stats, nil
		case cerr, ok := <-pc.Errors():
			if ok && cerr != nil {
				return stats, fmt.Errorf("partition %d consumer error: %w", partition, cerr)
			}
		case msg, ok := <-pc.Messages():
			if !ok || msg == nil || msg.Offset >= newest {
				return stats, nil
			}
			idle.Reset(cfg.idleTimeout)
			stats.processed++

			replay, err := extractReplayMessage(msg, cfg.targetTopic)
			if err != nil {
				stats.skipped++
				log.WithError(err).WithFields(log.Fields{
					"partition": msg.Partition,
					"offset":    msg.Offset,
				}).Warn("skip unsupported dlq message")
			} else if cfg.execute {
				if err := publishReplay(producer, replay); err != nil {
					return stats, fmt.Errorf("publish replay message: %w", err)
				}
				stats.replayed++
			} else {
				log.WithFields(log.Fields{
					"partition":    msg.Partition,
					"offset":       msg.Offset,
					"target_topic": replay.topic,
					"key":          replay.key,
					"event_type":   replay.eventType,
				}).Info("dlq replay candidate")
				stats.replayed++
			}

			if msg.Offset+1 >= newest {
				return stats, nil
			}
		}
	}
	return stats, nil
}

// extractReplayMessage восстанавливает событие из DLQ: топик берётся из флага
// или заголовка x-original-topic, ключ — id агрегата.
func extractReplayMessage(msg *sarama.ConsumerMessage, targetTopic string) (replayMessage, error) {
	var envelope kafka.Envelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		return replayMessage{}, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.EventType == "" || len(envelope.Payload) == 0 || string(envelope.Payload) == "null" {
		return replayMessage{}, errors.New("envelope has no event type or payload")
	}

	topic := strings.TrimSpace(targetTopic)
	if topic == "" {
		topic = headerValue(msg.Headers, kafka.HeaderOriginalTopic)
	}
	if topic == "" {
		topic = kafka.TopicOrderEvents
	}

	envelope.PublishedAt = time.Now().UTC()
	encoded, err := json.Marshal(envelope)
	if err != nil {
		return replayMessage{}, fmt.Errorf("encode replay envelope: %w", err)
	}

	key := envelope.AggregateID
	if key == "" {
		key = envelope.ID
	}
	return replayMessage{topic: topic, key: key, value: encoded, eventType: envelope.EventType}, nil
}

func headerValue(headers []*sarama.RecordHeader, key string) string {
	for _, h := range headers {
		if h != nil && string(h.Key) == key {
			return strings.TrimSpace(string(h.Value))
		}
	}
	return ""
}

func publishReplay(producer replayProducer, msg replayMessage) error {
	_, _, err := producer.SendMessage(&sarama.ProducerMessage{
		Topic: msg.topic,
		Key:   sarama.StringEncoder(msg.key),
		Value: sarama.ByteEncoder(msg.value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(kafka.HeaderEventType), Value: []byte(msg.eventType)},
		},
		Timestamp: time.Now().UTC(),
	})
	return err
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
