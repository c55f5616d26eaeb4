package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// timelineRepositoryInMemory хранит события в памяти (для разработки/тестов).
type timelineRepositoryInMemory struct {
	mu     sync.RWMutex
	events map[string][]domain.TimelineEvent
}

// NewTimelineRepository создаёт in-memory реализацию TimelineRepository.
func NewTimelineRepository() domain.TimelineRepository {
	return &timelineRepositoryInMemory{events: make(map[string][]domain.TimelineEvent)}
}

// Append добавляет событие в хранилище.
func (r *timelineRepositoryInMemory) Append(_ context.Context, event domain.TimelineEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := append(r.events[event.OrderID], event)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Occurred.Before(events[j].Occurred)
	})
	r.events[event.OrderID] = events

	return nil
}

// List возвращает события заказа в хронологическом порядке.
func (r *timelineRepositoryInMemory) List(_ context.Context, orderID string) ([]domain.TimelineEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.events[orderID]
	result := make([]domain.TimelineEvent, len(events))
	copy(result, events)
	return result, nil
}

var _ domain.TimelineRepository = (*timelineRepositoryInMemory)(nil)
