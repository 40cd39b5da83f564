package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// TransitionCompleted is published after a state transition committed. From
// and To carry the canonical state codes of the machine the transition ran
// on. Order-level transitions fan out to one event per booking that actually
// changed state.
type TransitionCompleted struct {
	OrderID    kernel.UUID
	BookingID  kernel.UUID
	Transition string
	From       string
	To         string
}

// TransitionPublisher delivers transition events to interested parties
// (notification senders, audit sinks). Publishing happens strictly after
// commit: subscribers never observe a state the store does not hold.
// Delivery is the subscriber's concern; publish errors are logged, not
// propagated to the caller whose transition already committed.
type TransitionPublisher interface {
	Publish(ctx context.Context, event TransitionCompleted)
}
