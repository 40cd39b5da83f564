package commands

import (
	"context"
	"errors"
	"time"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/orderlock"
)

// ExecuteTransitionCommandHandler runs state transitions. Per order it is a
// single writer: a per-order lock serializes concurrent transitions, the
// state change and its persistence share one transaction, and the returned
// view is re-aggregated from the post-transition state so callers never see
// the entity and its aggregate diverge.
type ExecuteTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *orderlock.Registry
	aggregator services.OrderAggregator
	publisher  ports.TransitionPublisher
}

// NewExecuteTransitionCommandHandler creates a transition handler.
func NewExecuteTransitionCommandHandler(
	uowFactory OrderUoWFactory,
	locks *orderlock.Registry,
	aggregator services.OrderAggregator,
	publisher ports.TransitionPublisher,
) ExecuteTransitionCommandHandler {
	return ExecuteTransitionCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		aggregator: aggregator,
		publisher:  publisher,
	}
}

// bookingChange records one booking's state change for persistence and
// post-commit events.
type bookingChange struct {
	booking *booking.Booking
	from    string
	to      string
}

// Handle executes the transition and returns the fresh order view.
//
// Requesting a transition whose target state is already reached is a no-op:
// nothing is persisted, no event is published, the current view is returned.
// An illegal transition on an explicitly targeted booking aborts the whole
// command with no partial mutation. An order-level transition instead skips
// bookings for which it is undefined, so cancelling an order is not blocked
// by an already finished booking.
func (h *ExecuteTransitionCommandHandler) Handle(
	ctx context.Context, cmd ExecuteTransitionCommand,
) (services.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return services.OrderView{}, err
	}

	release, err := h.locks.Acquire(cmd.OrderID())
	if err != nil {
		return services.OrderView{}, err
	}
	defer release()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return services.OrderView{}, err
	}
	bookings, err := uow.BookingRepository().GetAllForOrder(ctx, ord.ID())
	if err != nil {
		return services.OrderView{}, err
	}

	targets, err := h.resolveTargets(cmd, bookings)
	if err != nil {
		return services.OrderView{}, err
	}

	changes, err := h.apply(cmd, targets)
	if err != nil {
		return services.OrderView{}, err
	}

	for _, change := range changes {
		if err := uow.BookingRepository().Update(ctx, change.booking); err != nil {
			return services.OrderView{}, err
		}
	}

	view, err := h.aggregator.Aggregate(ord, bookings, cmd.Scope())
	if err != nil {
		return services.OrderView{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return services.OrderView{}, err
	}

	for _, change := range changes {
		h.publisher.Publish(ctx, ports.TransitionCompleted{
			OrderID:    ord.ID(),
			BookingID:  change.booking.ID(),
			Transition: cmd.Transition(),
			From:       change.from,
			To:         change.to,
		})
	}

	return view, nil
}

// resolveTargets selects the bookings the transition applies to. A targeted
// booking outside the caller's scope is Unauthorized; an order-level
// transition fans out to the active in-scope bookings.
func (h *ExecuteTransitionCommandHandler) resolveTargets(
	cmd ExecuteTransitionCommand, bookings []*booking.Booking,
) ([]*booking.Booking, error) {
	if cmd.BookingID() != nil {
		for _, b := range bookings {
			if !b.ID().IsEqual(*cmd.BookingID()) {
				continue
			}
			if !cmd.Scope().Authorizes(b.VendorID()) {
				return nil, errs.NewUnauthorizedError("booking belongs to a vendor outside the scope")
			}
			return []*booking.Booking{b}, nil
		}
		return nil, errs.NewObjectNotFoundError("bookingID", cmd.BookingID().String())
	}

	targets := make([]*booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		if cmd.Scope().Authorizes(b.VendorID()) && b.IsActive() {
			targets = append(targets, b)
		}
	}
	return targets, nil
}

// apply runs the transition over the targets, collecting actual changes. On
// a targeted booking the first illegal transition aborts: entities already
// mutated in memory are discarded with the transaction rollback. During
// order-level fan-out a booking for which the transition is undefined is
// skipped instead.
func (h *ExecuteTransitionCommandHandler) apply(
	cmd ExecuteTransitionCommand, targets []*booking.Booking,
) ([]bookingChange, error) {
	fanOut := cmd.BookingID() == nil
	changes := make([]bookingChange, 0, len(targets))
	now := time.Now()

	for _, b := range targets {
		var (
			from    string
			to      string
			changed bool
			err     error
		)
		if cmd.IsSalaried() {
			from = b.Salaried().String()
			changed, err = b.ApplySalariedTransition(booking.SalariedTransition(cmd.Transition()))
			to = b.Salaried().String()
		} else {
			from = b.Status().String()
			changed, err = b.ApplyTransition(booking.Transition(cmd.Transition()), now)
			to = b.Status().String()
		}
		if err != nil {
			if fanOut && errors.Is(err, errs.ErrIllegalTransition) {
				continue
			}
			return nil, err
		}
		if changed {
			changes = append(changes, bookingChange{booking: b, from: from, to: to})
		}
	}
	return changes, nil
}
