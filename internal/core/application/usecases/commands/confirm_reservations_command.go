package commands

import (
	"errors"

	"orders/internal/pkg/guard"
)

var ErrConfirmReservationsCommandIsNotConstructed = errors.New(
	"ConfirmReservationsCommand must be created via NewConfirmReservationsCommand constructor",
)

// ConfirmReservationsCommand drains pending stock confirmations, promoting
// the reserved bookings of each confirmed buyable to processing. It is a
// system activity run by the scheduler, so it carries no vendor scope.
type ConfirmReservationsCommand struct {
	guard guard.ConstructorGuard
}

// NewConfirmReservationsCommand creates a reservation confirmation command.
func NewConfirmReservationsCommand() (ConfirmReservationsCommand, error) {
	return ConfirmReservationsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmReservationsCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReservationsCommandIsNotConstructed)
}
