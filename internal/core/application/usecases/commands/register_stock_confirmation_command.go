package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrRegisterStockConfirmationCommandIsNotConstructed = errors.New(
	"RegisterStockConfirmationCommand must be created via NewRegisterStockConfirmationCommand constructor",
)

// RegisterStockConfirmationCommand records that stock of a buyable has been
// confirmed, queueing its reserved bookings for promotion by the scheduled
// confirmation run. It is fed by the inventory side, not by vendors, so it
// carries no scope.
type RegisterStockConfirmationCommand struct { //nolint:recvcheck //using for validation
	buyableID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterStockConfirmationCommand creates a stock confirmation command.
func NewRegisterStockConfirmationCommand(buyableID kernel.UUID) (RegisterStockConfirmationCommand, error) {
	if err := buyableID.Validate(); err != nil {
		return RegisterStockConfirmationCommand{}, errs.NewValueIsRequiredErrorWithCause("buyableID", err)
	}
	return RegisterStockConfirmationCommand{
		buyableID: buyableID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterStockConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrRegisterStockConfirmationCommandIsNotConstructed)
}

// BuyableID returns the confirmed buyable.
func (c RegisterStockConfirmationCommand) BuyableID() kernel.UUID { return c.buyableID }
