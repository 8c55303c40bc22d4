package notification

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
)

// OutboxDispatcher persists workflow events to the transactional outbox;
// the producer worker drains them to Kafka.
type OutboxDispatcher struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxDispatcher(outbox kafka.OutboxRepository, logger ...*zap.Logger) *OutboxDispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &OutboxDispatcher{outbox: outbox, logger: l}
}

func (d *OutboxDispatcher) DispatchLeaveEvent(ctx context.Context, event events.LeaveWorkflowEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	row := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   event.LeaveID,
		EventType:     event.EventType,
		Topic:         events.LeaveWorkflowTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}

	if err := d.outbox.Create(ctx, row); err != nil {
		return err
	}

	d.logger.Debug("leave event queued",
		zap.String("event_type", event.EventType),
		zap.String("leave_id", event.LeaveID),
		zap.Int("recipients", len(event.Recipients)),
	)
	return nil
}
