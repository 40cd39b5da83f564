package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrCorrectBookingCommandIsNotConstructed = errors.New(
	"CorrectBookingCommand must be created via NewCorrectBookingCommand constructor",
)

// CorrectBookingCommand requests a pricing correction on a booking: a price
// fix or a vendor-granted discount after checkout. The bounds (currency
// immutability, discount within line gross, no correction after
// finalization) are enforced by the booking entity.
type CorrectBookingCommand struct { //nolint:recvcheck //using for validation
	bookingID   kernel.UUID
	unitNet     kernel.Money
	discountNet kernel.Money
	vatRate     kernel.VATRate
	scope       kernel.Scope

	guard guard.ConstructorGuard
}

// NewCorrectBookingCommand creates a pricing correction command.
func NewCorrectBookingCommand(
	bookingID kernel.UUID,
	unitNet kernel.Money,
	discountNet kernel.Money,
	vatRate kernel.VATRate,
	scope kernel.Scope,
) (CorrectBookingCommand, error) {
	cmd := CorrectBookingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBookingID(bookingID),
		cmd.setPricing(unitNet, discountNet, vatRate),
		cmd.setScope(scope),
	); err != nil {
		return CorrectBookingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CorrectBookingCommand) Validate() error {
	return c.guard.Validate(ErrCorrectBookingCommandIsNotConstructed)
}

// BookingID returns the booking to correct.
func (c CorrectBookingCommand) BookingID() kernel.UUID { return c.bookingID }

// UnitNet returns the corrected per-unit net price.
func (c CorrectBookingCommand) UnitNet() kernel.Money { return c.unitNet }

// DiscountNet returns the corrected line discount.
func (c CorrectBookingCommand) DiscountNet() kernel.Money { return c.discountNet }

// VATRate returns the corrected VAT rate.
func (c CorrectBookingCommand) VATRate() kernel.VATRate { return c.vatRate }

// Scope returns the caller's vendor scope.
func (c CorrectBookingCommand) Scope() kernel.Scope { return c.scope }

func (c *CorrectBookingCommand) setBookingID(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("bookingID", err)
	}
	c.bookingID = bookingID
	return nil
}

func (c *CorrectBookingCommand) setPricing(unitNet, discountNet kernel.Money, vatRate kernel.VATRate) error {
	if err := errors.Join(unitNet.Validate(), discountNet.Validate(), vatRate.Validate()); err != nil {
		return err
	}
	c.unitNet = unitNet
	c.discountNet = discountNet
	c.vatRate = vatRate
	return nil
}

func (c *CorrectBookingCommand) setScope(scope kernel.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	c.scope = scope
	return nil
}
