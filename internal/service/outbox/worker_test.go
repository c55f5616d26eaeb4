package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
)

func TestWorker_ProcessOnce_MarkSent(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{
		pending: []domain.OutboxMessage{
			{
				ID:            "msg-1",
				AggregateType: domain.OutboxAggregateOrder,
				AggregateID:   "order-1",
				EventType:     domain.EventTypeOrderUpdated,
				Payload:       []byte(`{"order_id":"order-1","final_amount":"9.20"}`),
			},
		},
	}
	publisher := &stubPublisher{}

	worker := NewWorker(
		repo,
		publisher,
		WithRetryBaseDelay(0),
		WithMaxAttempts(3),
	)

	worker.ProcessOnce(context.Background())

	if got := len(repo.sentIDs); got != 1 {
		t.Fatalf("expected 1 sent mark, got %d", got)
	}
	if repo.sentIDs[0] != "msg-1" {
		t.Fatalf("expected sent id msg-1, got %s", repo.sentIDs[0])
	}
	if got := len(repo.failedIDs); got != 0 {
		t.Fatalf("expected 0 failed marks, got %d", got)
	}
	if got := publisher.calls(); got != 1 {
		t.Fatalf("expected 1 publish call, got %d", got)
	}
}

func TestWorker_ProcessOnce_MarkFailedAndDLQAfterRetries(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{
		pending: []domain.OutboxMessage{
			{
				ID:            "msg-2",
				AggregateType: domain.OutboxAggregateOrder,
				AggregateID:   "order-2",
				EventType:     domain.EventTypeOrderUpdated,
				Payload:       []byte(`{"order_id":"order-2"}`),
			},
		},
	}
	publisher := &stubPublisher{err: errors.New("publish failed")}
	dlqPublisher := &stubPublisher{}

	worker := NewWorker(
		repo,
		publisher,
		WithDLQPublisher(dlqPublisher),
		WithRetryBaseDelay(0),
		WithMaxAttempts(3),
	)

	worker.ProcessOnce(context.Background())

	if got := publisher.calls(); got != 3 {
		t.Fatalf("expected 3 publish attempts, got %d", got)
	}
	if got := len(repo.sentIDs); got != 0 {
		t.Fatalf("expected 0 sent marks, got %d", got)
	}
	if got := len(repo.failedIDs); got != 1 {
		t.Fatalf("expected 1 failed mark, got %d", got)
	}
	if repo.failedIDs[0] != "msg-2" {
		t.Fatalf("expected failed id msg-2, got %s", repo.failedIDs[0])
	}
	if got := dlqPublisher.calls(); got != 1 {
		t.Fatalf("expected 1 DLQ publish, got %d", got)
	}
}

func TestWorker_ProcessOnce_SuccessAfterRetry(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{
		pending: []domain.OutboxMessage{
			{
				ID:            "msg-3",
				AggregateType: domain.OutboxAggregateOrder,
				AggregateID:   "order-3",
				EventType:     domain.EventTypeOrderUpdated,
				Payload:       []byte(`{"order_id":"order-3"}`),
			},
		},
	}
	publisher := &stubPublisher{
		sequenceErrors: []error{
			errors.New("attempt 1"),
			errors.New("attempt 2"),
			nil,
		},
	}

	worker := NewWorker(
		repo,
		publisher,
		WithRetryBaseDelay(0),
		WithMaxAttempts(3),
	)

	worker.ProcessOnce(context.Background())

	if got := publisher.calls(); got != 3 {
		t.Fatalf("expected 3 publish attempts, got %d", got)
	}
	if got := len(repo.sentIDs); got != 1 {
		t.Fatalf("expected 1 sent mark, got %d", got)
	}
	if got := len(repo.failedIDs); got != 0 {
		t.Fatalf("expected 0 failed marks, got %d", got)
	}
}

type stubOutboxRepo struct {
	pending   []domain.OutboxMessage
	sentIDs   []string
	failedIDs []string
}

func (s *stubOutboxRepo) Enqueue(_ context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	return msg, nil
}

func (s *stubOutboxRepo) PullPending(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	if limit <= 0 || limit >= len(s.pending) {
		return append([]domain.OutboxMessage(nil), s.pending...), nil
	}
	return append([]domain.OutboxMessage(nil), s.pending[:limit]...), nil
}

func (s *stubOutboxRepo) Stats(_ context.Context) (domain.OutboxStats, error) {
	stats := domain.OutboxStats{
		PendingCount: len(s.pending),
	}
	if len(s.pending) > 0 {
		stats.OldestPendingAt = time.Now().UTC().Add(-time.Second)
	}
	return stats, nil
}

func (s *stubOutboxRepo) MarkSent(_ context.Context, id string) error {
	s.sentIDs = append(s.sentIDs, id)
	return nil
}

func (s *stubOutboxRepo) MarkFailed(_ context.Context, id string) error {
	s.failedIDs = append(s.failedIDs, id)
	return nil
}

type stubPublisher struct {
	mu             sync.Mutex
	err            error
	sequenceErrors []error
	callCount      int
}

func (s *stubPublisher) Publish(_ context.Context, _ domain.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.callCount++
	if len(s.sequenceErrors) > 0 {
		err := s.sequenceErrors[0]
		s.sequenceErrors = s.sequenceErrors[1:]
		return err
	}

	return s.err
}

func (s *stubPublisher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

var _ domain.OutboxRepository = (*stubOutboxRepo)(nil)
var _ domain.OutboxPublisher = (*stubPublisher)(nil)

func TestWorker_Run_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	repo := &stubOutboxRepo{}
	publisher := &stubPublisher{}

	worker := NewWorker(
		repo,
		publisher,
		WithPollInterval(5*time.Millisecond),
		WithRetryBaseDelay(0),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()

	time.Sleep(15 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}

func TestWorker_ProcessOnce_PublishesToKafka(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewOutboxRepository()
	for _, id := range []string{"order-10", "order-11"} {
		if _, err := repo.Enqueue(ctx, domain.OutboxMessage{
			AggregateType: domain.OutboxAggregateOrder,
			AggregateID:   id,
			EventType:     domain.EventTypeOrderCreated,
			Payload:       []byte(`{"order_id":"` + id + `"}`),
		}); err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}

	syncProducer := mocks.NewSyncProducer(t, nil)
	syncProducer.ExpectSendMessageAndSucceed()
	syncProducer.ExpectSendMessageAndSucceed()

	publisher := kafka.NewOutboxPublisher(kafka.NewProducerFromSync(syncProducer, nil), kafka.TopicOrderEvents)
	worker := NewWorker(repo, publisher, WithRetryBaseDelay(0))

	worker.ProcessOnce(ctx)

	if got := len(repo.AllPending()); got != 0 {
		t.Fatalf("expected outbox to be drained, %d pending", got)
	}
	if err := syncProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
