package commands

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/orderlock"
)

// MarkBookingsExportedCommandHandler records export runs. The whole batch is
// one transaction: an unauthorized or missing booking aborts the run so the
// export can be retried as a unit. The batch holds the lock of every touched
// order for its duration; contention on any one of them aborts the run.
type MarkBookingsExportedCommandHandler struct {
	uowFactory BookingUoWFactory
	locks      *orderlock.Registry
}

// NewMarkBookingsExportedCommandHandler creates an export marker handler.
func NewMarkBookingsExportedCommandHandler(
	uowFactory BookingUoWFactory, locks *orderlock.Registry,
) MarkBookingsExportedCommandHandler {
	return MarkBookingsExportedCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle flips the exported flag on every booking of the batch. Bookings
// already marked are skipped without error.
func (h *MarkBookingsExportedCommandHandler) Handle(ctx context.Context, cmd MarkBookingsExportedCommand) error {
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

	held := make(map[kernel.UUID]func())
	defer func() {
		for _, release := range held {
			release()
		}
	}()

	for _, id := range cmd.BookingIDs() {
		b, err := uow.BookingRepository().Get(ctx, id)
		if err != nil {
			return err
		}
		if !cmd.Scope().Authorizes(b.VendorID()) {
			return errs.NewUnauthorizedError("booking belongs to a vendor outside the scope")
		}

		if _, ok := held[b.OrderID()]; !ok {
			release, err := h.locks.Acquire(b.OrderID())
			if err != nil {
				return err
			}
			held[b.OrderID()] = release

			// The read above preceded the lock. Re-read so the
			// full-row update cannot revert a transition committed
			// in between.
			if b, err = uow.BookingRepository().Get(ctx, id); err != nil {
				return err
			}
		}

		if !b.MarkExported() {
			continue
		}
		if err := uow.BookingRepository().Update(ctx, b); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
