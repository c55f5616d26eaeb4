package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
)

func TestTimelineRepository_AppendList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTimelineRepository()
	now := time.Now().UTC()

	events := []domain.TimelineEvent{
		{OrderID: "order-1", Type: domain.TimelineOrderUpdated, Occurred: now.Add(time.Second)},
		{OrderID: "order-1", Type: domain.TimelineOrderCreated, Occurred: now},
		{OrderID: "order-2", Type: domain.TimelineOrderCreated, Occurred: now},
	}
	for _, ev := range events {
		if err := repo.Append(ctx, ev); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	got, err := repo.List(ctx, "order-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Type != domain.TimelineOrderCreated || got[1].Type != domain.TimelineOrderUpdated {
		t.Fatalf("events are not chronological: %+v", got)
	}

	empty, err := repo.List(ctx, "missing")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %v %v", empty, err)
	}
}
