package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/domain"
)

// EventKind classifies a notification event
type EventKind string

const (
	KindOrderCreated  EventKind = "created"
	KindStatusChanged EventKind = "statusChanged"
)

// Event describes an order creation or status change, destined for
// delivery outside this core. Delivery is best-effort: a failed send is
// logged and never rolls back the change it describes.
type Event struct {
	OrderID    uuid.UUID              `json:"order_id"`
	Kind       EventKind              `json:"kind"`
	FromStatus domain.OrderStatus     `json:"from_status,omitempty"`
	ToStatus   domain.OrderStatus     `json:"to_status,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// Dispatcher delivers notification events. Retry policy, if any, belongs
// to the implementation, not to callers.
type Dispatcher interface {
	Send(ctx context.Context, event Event) error
}

// LogDispatcher is the default dispatcher; it records events in the
// service log instead of delivering them anywhere.
type LogDispatcher struct {
	logger *zap.Logger
}

// NewLogDispatcher creates a log-only dispatcher
func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Send(_ context.Context, event Event) error {
	d.logger.Info("notification event",
		zap.String("order_id", event.OrderID.String()),
		zap.String("kind", string(event.Kind)),
		zap.String("from_status", string(event.FromStatus)),
		zap.String("to_status", string(event.ToStatus)),
		zap.Time("timestamp", event.Timestamp),
	)
	return nil
}
