package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrUpdateBookingCommentCommandIsNotConstructed = errors.New(
	"UpdateBookingCommentCommand must be created via NewUpdateBookingCommentCommand constructor",
)

// UpdateBookingCommentCommand replaces the buyer comment of one booking.
// An empty comment clears it.
type UpdateBookingCommentCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID
	comment   string
	scope     kernel.Scope

	guard guard.ConstructorGuard
}

// NewUpdateBookingCommentCommand creates a comment update command.
func NewUpdateBookingCommentCommand(
	bookingID kernel.UUID, comment string, scope kernel.Scope,
) (UpdateBookingCommentCommand, error) {
	cmd := UpdateBookingCommentCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBookingID(bookingID),
		cmd.setScope(scope),
	); err != nil {
		return UpdateBookingCommentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateBookingCommentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateBookingCommentCommandIsNotConstructed)
}

// BookingID returns the booking whose comment changes.
func (c UpdateBookingCommentCommand) BookingID() kernel.UUID { return c.bookingID }

// Comment returns the new comment text.
func (c UpdateBookingCommentCommand) Comment() string { return c.comment }

// Scope returns the caller's vendor scope.
func (c UpdateBookingCommentCommand) Scope() kernel.Scope { return c.scope }

func (c *UpdateBookingCommentCommand) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("bookingID", err)
	}
	c.bookingID = bookingID
	return nil
}

func (c *UpdateBookingCommentCommand) setScope(scope kernel.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	c.scope = scope
	return nil
}
