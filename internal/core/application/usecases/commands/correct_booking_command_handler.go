package commands

import (
	"context"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/orderlock"
)

// CorrectBookingCommandHandler applies pricing corrections to bookings. It
// takes the booking's order lock like the transition engine, so the full-row
// update cannot overwrite a state change committed between its read and its
// write.
type CorrectBookingCommandHandler struct {
	uowFactory BookingUoWFactory
	locks      *orderlock.Registry
}

// NewCorrectBookingCommandHandler creates a pricing correction handler.
func NewCorrectBookingCommandHandler(
	uowFactory BookingUoWFactory, locks *orderlock.Registry,
) CorrectBookingCommandHandler {
	return CorrectBookingCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle loads the booking, authorizes the caller against its vendor, and
// persists the corrected pricing under the order's lock.
func (h *CorrectBookingCommandHandler) Handle(ctx context.Context, cmd CorrectBookingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BookingRepository().Get(ctx, cmd.BookingID())
	if err != nil {
		return err
	}
	if !cmd.Scope().Authorizes(b.VendorID()) {
		return errs.NewUnauthorizedError("booking belongs to a vendor outside the scope")
	}

	release, err := h.locks.Acquire(b.OrderID())
	if err != nil {
		return err
	}
	defer release()

	// The first read only located the order. Mutate a fresh read taken
	// under the lock.
	b, err = uow.BookingRepository().Get(ctx, cmd.BookingID())
	if err != nil {
		return err
	}

	if err := b.Correct(cmd.UnitNet(), cmd.DiscountNet(), cmd.VATRate()); err != nil {
		return err
	}
	if err := uow.BookingRepository().Update(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
