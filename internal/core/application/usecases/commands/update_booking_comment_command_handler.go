package commands

import (
	"context"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/orderlock"
)

// UpdateBookingCommentCommandHandler persists buyer comment changes. The
// comment write goes through the order lock like every other booking
// mutation: the repository writes the whole row, so an unguarded write could
// revert a concurrent state change.
type UpdateBookingCommentCommandHandler struct {
	uowFactory BookingUoWFactory
	locks      *orderlock.Registry
}

// NewUpdateBookingCommentCommandHandler creates a comment update handler.
func NewUpdateBookingCommentCommandHandler(
	uowFactory BookingUoWFactory, locks *orderlock.Registry,
) UpdateBookingCommentCommandHandler {
	return UpdateBookingCommentCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle loads the booking, authorizes the caller, and stores the comment
// under the order's lock.
func (h *UpdateBookingCommentCommandHandler) Handle(ctx context.Context, cmd UpdateBookingCommentCommand) error {
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

	b.UpdateComment(cmd.Comment())
	if err := uow.BookingRepository().Update(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
