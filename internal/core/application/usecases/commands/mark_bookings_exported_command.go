package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrMarkBookingsExportedCommandIsNotConstructed = errors.New(
	"MarkBookingsExportedCommand must be created via NewMarkBookingsExportedCommand constructor",
)

// MarkBookingsExportedCommand flips the exported flag on a batch of bookings
// after an export run delivered them. The export formatting itself happens
// outside the core; this command only records the fact.
type MarkBookingsExportedCommand struct { //nolint:recvcheck //using for validation
	bookingIDs []kernel.UUID
	scope      kernel.Scope

	guard guard.ConstructorGuard
}

// NewMarkBookingsExportedCommand creates an export marker command.
func NewMarkBookingsExportedCommand(
	bookingIDs []kernel.UUID, scope kernel.Scope,
) (MarkBookingsExportedCommand, error) {
	cmd := MarkBookingsExportedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBookingIDs(bookingIDs),
		cmd.setScope(scope),
	); err != nil {
		return MarkBookingsExportedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkBookingsExportedCommand) Validate() error {
	return c.guard.Validate(ErrMarkBookingsExportedCommandIsNotConstructed)
}

// BookingIDs returns the bookings the export run delivered.
func (c MarkBookingsExportedCommand) BookingIDs() []kernel.UUID { return c.bookingIDs }

// Scope returns the caller's vendor scope.
func (c MarkBookingsExportedCommand) Scope() kernel.Scope { return c.scope }

func (c *MarkBookingsExportedCommand) setBookingIDs(bookingIDs []kernel.UUID) error {
	if len(bookingIDs) == 0 {
		return errs.NewValueIsRequiredError("bookingIDs")
	}
	for _, id := range bookingIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("bookingIDs", err)
		}
	}
	c.bookingIDs = bookingIDs
	return nil
}

func (c *MarkBookingsExportedCommand) setScope(scope kernel.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	c.scope = scope
	return nil
}
