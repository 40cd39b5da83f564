// Package notify delivers committed transition events to in-process
// subscribers such as notification senders and audit sinks.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"orders/internal/core/ports"
)

// Subscriber consumes a transition event. Returned errors are logged and do
// not affect other subscribers.
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, event ports.TransitionCompleted) error
}

// Bus is an in-process TransitionPublisher fanning events out to registered
// subscribers. Subscribers registered after publishing started receive only
// subsequent events.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	logger      *slog.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{logger: logger.With(slog.String("component", "notify"))}
}

// Subscribe registers a subscriber for all future events.
func (b *Bus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, s)
}

// Publish delivers the event to every subscriber in registration order.
// A failing subscriber is logged and skipped.
func (b *Bus) Publish(ctx context.Context, event ports.TransitionCompleted) {
	b.mu.RLock()
	subscribers := make([]Subscriber, len(b.subscribers))
	copy(subscribers, b.subscribers)
	b.mu.RUnlock()

	for _, s := range subscribers {
		if err := s.Handle(ctx, event); err != nil {
			b.logger.ErrorContext(ctx, "transition event delivery failed",
				slog.String("subscriber", s.Name()),
				slog.String("order_id", event.OrderID.String()),
				slog.String("booking_id", event.BookingID.String()),
				slog.String("transition", event.Transition),
				slog.Any("error", err),
			)
		}
	}
}

var _ ports.TransitionPublisher = (*Bus)(nil)
