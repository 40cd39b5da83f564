package commands

import (
	"context"
	"errors"
	"time"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/orderlock"
)

// ConfirmReservationsCommandHandler promotes reserved bookings once their
// buyable's stock shortage is resolved. One run drains all pending
// confirmations in a single transaction; events go out after commit. Every
// touched order is mutated under its lock; a buyable whose orders are
// contended is left pending for the next run.
type ConfirmReservationsCommandHandler struct {
	uowFactory ReservationUoWFactory
	locks      *orderlock.Registry
	publisher  ports.TransitionPublisher
}

// NewConfirmReservationsCommandHandler creates a reservation confirmation
// handler.
func NewConfirmReservationsCommandHandler(
	uowFactory ReservationUoWFactory, locks *orderlock.Registry, publisher ports.TransitionPublisher,
) ConfirmReservationsCommandHandler {
	return ConfirmReservationsCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		publisher:  publisher,
	}
}

// Handle promotes the reserved bookings of every confirmed buyable to
// processing and consumes the confirmations. It returns how many bookings
// were promoted.
func (h *ConfirmReservationsCommandHandler) Handle(
	ctx context.Context, cmd ConfirmReservationsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	buyableIDs, err := uow.StockConfirmationRepository().GetUnprocessed(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	var events []ports.TransitionCompleted
	held := make(map[kernel.UUID]func())
	defer func() {
		for _, release := range held {
			release()
		}
	}()

	for _, buyableID := range buyableIDs {
		reserved, err := uow.BookingRepository().GetAllReservedForBuyable(ctx, buyableID)
		if err != nil {
			return 0, err
		}

		acquired, err := h.acquireOrderLocks(reserved, held)
		if err != nil {
			return 0, err
		}
		if !acquired {
			// A transition holds one of the orders. The confirmation
			// stays pending; the next run retries.
			continue
		}

		for _, stale := range reserved {
			// The reserved list was snapped before the locks. Re-read
			// each booking so a state change committed in between is
			// respected instead of overwritten.
			b, err := uow.BookingRepository().Get(ctx, stale.ID())
			if err != nil {
				return 0, err
			}
			if b.Status() != booking.StatusReserved {
				continue
			}
			changed, err := b.ApplyTransition(booking.TransitionProcess, now)
			if err != nil {
				return 0, err
			}
			if !changed {
				continue
			}
			if err := uow.BookingRepository().Update(ctx, b); err != nil {
				return 0, err
			}
			events = append(events, ports.TransitionCompleted{
				OrderID:    b.OrderID(),
				BookingID:  b.ID(),
				Transition: string(booking.TransitionProcess),
				From:       booking.StatusReserved.String(),
				To:         booking.StatusProcessing.String(),
			})
		}
		if err := uow.StockConfirmationRepository().MarkProcessed(ctx, buyableID); err != nil {
			return 0, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, event := range events {
		h.publisher.Publish(ctx, event)
	}

	return len(events), nil
}

// acquireOrderLocks takes the lock of every order the bookings belong to,
// skipping orders already held by this run. It reports false when any lock
// is contended.
func (h *ConfirmReservationsCommandHandler) acquireOrderLocks(
	bookings []*booking.Booking, held map[kernel.UUID]func(),
) (bool, error) {
	for _, b := range bookings {
		if _, ok := held[b.OrderID()]; ok {
			continue
		}
		release, err := h.locks.Acquire(b.OrderID())
		if err != nil {
			if errors.Is(err, errs.ErrConcurrentModification) {
				return false, nil
			}
			return false, err
		}
		held[b.OrderID()] = release
	}
	return true, nil
}
