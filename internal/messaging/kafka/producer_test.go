package kafka

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID: "order-123",
		Items: []domain.OrderItem{
			{ProductID: domain.ProductIDXBacon, Name: "X Bacon", Category: domain.CategorySandwich, Quantity: 1, UnitPrice: decimal.RequireFromString("7")},
			{ProductID: domain.ProductIDSoftDrink, Name: "Soft Drink", Category: domain.CategorySoftDrink, Quantity: 1, UnitPrice: decimal.RequireFromString("2.5")},
		},
		TotalAmount:     decimal.RequireFromString("9.5"),
		DiscountPercent: 15,
		FinalAmount:     decimal.RequireFromString("8.08"),
		UpdatedAt:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestProducer_PublishEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := NewProducerFromSync(mockProducer, log.WithField("component", "kafka-producer-test"))

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event OrderEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.OrderID != "order-123" || event.FinalAmount != "8.08" {
			return fmt.Errorf("unexpected event %+v", event)
		}
		return nil
	})

	event := NewOrderEvent(EventTypeOrderCreated, sampleOrder())
	if err := producer.PublishEvent(TopicOrderEvents, "order-123", event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := NewProducerFromSync(mockProducer, nil)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.PublishEvent(TopicOrderEvents, "order-123", NewOrderEvent(EventTypeOrderDeleted, domain.Order{ID: "order-123"}))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_MarshalError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := NewProducerFromSync(mockProducer, nil)

	if err := producer.PublishEvent(TopicOrderEvents, "k", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOrderEvent(t *testing.T) {
	event := NewOrderEvent(EventTypeOrderUpdated, sampleOrder())

	if event.EventType != EventTypeOrderUpdated {
		t.Errorf("expected event type %s, got %s", EventTypeOrderUpdated, event.EventType)
	}
	if event.TotalAmount != "9.50" || event.FinalAmount != "8.08" || event.DiscountPercent != 15 {
		t.Errorf("unexpected pricing: %+v", event)
	}
	if len(event.Items) != 2 || event.Items[1].Category != "SoftDrink" || event.Items[0].UnitPrice != "7.00" {
		t.Errorf("unexpected items: %+v", event.Items)
	}
	if !event.Timestamp.Equal(sampleOrder().UpdatedAt) {
		t.Errorf("expected timestamp from order, got %s", event.Timestamp)
	}
}

func TestNewOrderEvent_Deleted(t *testing.T) {
	event := NewOrderEvent(EventTypeOrderDeleted, domain.Order{ID: "order-9"})

	if event.OrderID != "order-9" || len(event.Items) != 0 || event.TotalAmount != "" {
		t.Errorf("deleted event must carry only the id, got %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}
