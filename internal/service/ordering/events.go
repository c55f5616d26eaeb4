package ordering

import (
	"context"
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/messaging/kafka"
)

// emitEvent пишет событие в timeline и outbox. Заказ к этому моменту уже сохранён,
// поэтому ошибки здесь только логируются.
func (a *Assembler) emitEvent(ctx context.Context, order domain.Order, eventType, timelineType, reason string) {
	fields := log.Fields{
		"order_id": order.ID,
		"event":    eventType,
	}

	if a.timeline != nil {
		err := a.timeline.Append(ctx, domain.TimelineEvent{
			OrderID:  order.ID,
			Type:     timelineType,
			Reason:   reason,
			Occurred: order.UpdatedAt,
		})
		if err != nil {
			a.logger.WithError(err).WithFields(fields).Error("append timeline event failed")
		}
	}

	if a.outbox == nil {
		return
	}

	data, err := json.Marshal(kafka.NewOrderEvent(kafka.EventType(eventType), order))
	if err != nil {
		a.logger.WithError(err).WithFields(fields).Error("marshal event failed")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: domain.OutboxAggregateOrder,
		AggregateID:   order.ID,
		EventType:     eventType,
		Payload:       data,
		CreatedAt:     order.UpdatedAt,
	}
	if _, err := a.outbox.Enqueue(ctx, msg); err != nil {
		a.logger.WithError(err).WithFields(fields).Error("enqueue event failed")
	}
}
