package booking

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrBookingIsNotConstructed is returned when a Booking instance was not
// created through NewBooking or RestoreBooking.
var ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking or RestoreBooking constructor")

// Booking is one purchased line item of an order: a buyable, a quantity, and
// the per-unit pricing captured at checkout time. A booking belongs to exactly
// one order and one vendor; the vendor identity is what scope authorization
// checks against.
//
// Invariants:
//   - quantity is positive while the booking is active; a cancelled booking
//     may carry zero (stock was released)
//   - unit price and discount share one currency, fixed at creation
//   - the line discount never exceeds the line gross amount
//   - state changes go through ApplyTransition / ApplySalariedTransition only
//
// Bookings are never deleted. Cancellation is a terminal state that excludes
// the booking from aggregation while keeping the record for bookkeeping.
type Booking struct {
	id        kernel.UUID
	orderID   kernel.UUID
	buyableID kernel.UUID
	vendorID  kernel.UUID

	title        string
	comment      string
	quantity     decimal.Decimal
	quantityUnit string

	unitNet     kernel.Money
	discountNet kernel.Money
	vatRate     kernel.VATRate

	status         Status
	salaried       Salaried
	exported       bool
	position       int
	stateChangedAt time.Time

	isConstructed bool
}

// NewBooking creates a booking at checkout time. New bookings start in state
// new, unpaid and unexported. The position is the insertion index within the
// order and is used as the deterministic tie-break during aggregation.
func NewBooking(
	id kernel.UUID,
	orderID kernel.UUID,
	buyableID kernel.UUID,
	vendorID kernel.UUID,
	title string,
	comment string,
	quantity decimal.Decimal,
	quantityUnit string,
	unitNet kernel.Money,
	discountNet kernel.Money,
	vatRate kernel.VATRate,
	position int,
	createdAt time.Time,
) (*Booking, error) {
	b := &Booking{
		status:         StatusNew,
		salaried:       SalariedNo,
		comment:        comment,
		quantityUnit:   quantityUnit,
		stateChangedAt: createdAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setBuyableID(buyableID),
		b.setVendorID(vendorID),
		b.setTitle(title),
		b.setQuantity(quantity),
		b.setVATRate(vatRate),
		b.setPosition(position),
	); err != nil {
		return nil, err
	}

	if err := b.setPricing(unitNet, discountNet); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBooking reconstructs a booking from persistence, restoring state
// machine positions and flags the factory does not accept. Field invariants
// are re-validated so a corrupted record surfaces as InvalidBookingData
// instead of flowing into totals.
func RestoreBooking(
	id kernel.UUID,
	orderID kernel.UUID,
	buyableID kernel.UUID,
	vendorID kernel.UUID,
	title string,
	comment string,
	quantity decimal.Decimal,
	quantityUnit string,
	unitNet kernel.Money,
	discountNet kernel.Money,
	vatRate kernel.VATRate,
	status Status,
	salaried Salaried,
	exported bool,
	position int,
	stateChangedAt time.Time,
) (*Booking, error) {
	if err := errors.Join(status.Validate(), salaried.Validate()); err != nil {
		return nil, err
	}

	b := &Booking{
		status:         status,
		salaried:       salaried,
		exported:       exported,
		comment:        comment,
		quantityUnit:   quantityUnit,
		stateChangedAt: stateChangedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setBuyableID(buyableID),
		b.setVendorID(vendorID),
		b.setTitle(title),
		b.setQuantity(quantity),
		b.setVATRate(vatRate),
		b.setPosition(position),
	); err != nil {
		return nil, err
	}

	if err := b.setPricing(unitNet, discountNet); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the Booking was created through a constructor.
func (b *Booking) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookingIsNotConstructed
	}
	return nil
}

// IsEqual compares two bookings by identity.
func (b *Booking) IsEqual(other *Booking) bool {
	return other != nil && b.id.IsEqual(other.id)
}

func (b *Booking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	b.id = id
	return nil
}

func (b *Booking) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	b.orderID = orderID
	return nil
}

func (b *Booking) setBuyableID(buyableID kernel.UUID) error {
	if err := buyableID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyableID", err)
	}
	b.buyableID = buyableID
	return nil
}

func (b *Booking) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vendorID", err)
	}
	b.vendorID = vendorID
	return nil
}

func (b *Booking) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	b.title = title
	return nil
}

func (b *Booking) setQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return errs.NewInvalidBookingDataErrorWithCause("quantity",
			fmt.Errorf("quantity %s is negative", quantity.String()))
	}
	// Zero quantity is legal only on cancelled bookings, where stock has been
	// released; an active line with nothing on it is a data error.
	if quantity.IsZero() && b.status != StatusCancelled {
		return errs.NewInvalidBookingDataErrorWithCause("quantity",
			fmt.Errorf("quantity must be positive while the booking is active"))
	}
	b.quantity = quantity
	return nil
}

func (b *Booking) setVATRate(rate kernel.VATRate) error {
	if err := rate.Validate(); err != nil {
		return errs.NewInvalidBookingDataErrorWithCause("vatRate", err)
	}
	b.vatRate = rate
	return nil
}

func (b *Booking) setPosition(position int) error {
	if position < 0 {
		return errs.NewValueIsInvalidError("position")
	}
	b.position = position
	return nil
}

// setPricing validates the unit price / discount pair as a unit: one shared
// currency, non-negative values, discount bounded by the line gross. Runs
// after quantity is set.
func (b *Booking) setPricing(unitNet, discountNet kernel.Money) error {
	if err := unitNet.Validate(); err != nil {
		return errs.NewInvalidBookingDataErrorWithCause("unitNet", err)
	}
	if err := discountNet.Validate(); err != nil {
		return errs.NewInvalidBookingDataErrorWithCause("discountNet", err)
	}
	if unitNet.IsNegative() {
		return errs.NewInvalidBookingDataErrorWithCause("unitNet",
			fmt.Errorf("unit price %s is negative", unitNet.String()))
	}
	if discountNet.IsNegative() {
		return errs.NewInvalidBookingDataErrorWithCause("discountNet",
			fmt.Errorf("discount %s is negative", discountNet.String()))
	}
	if unitNet.Currency() != discountNet.Currency() {
		return errs.NewInvalidBookingDataErrorWithCause("discountNet",
			errs.NewCurrencyMismatchError(unitNet.Currency(), discountNet.Currency()))
	}

	gross := unitNet.MulQuantity(b.quantity)
	rest, err := gross.Sub(discountNet)
	if err != nil {
		return errs.NewInvalidBookingDataErrorWithCause("discountNet", err)
	}
	if rest.IsNegative() {
		return errs.NewInvalidBookingDataErrorWithCause("discountNet",
			fmt.Errorf("discount %s exceeds line gross %s", discountNet.String(), gross.String()))
	}

	b.unitNet = unitNet
	b.discountNet = discountNet
	return nil
}

// ID returns the booking identity.
func (b *Booking) ID() kernel.UUID { return b.id }

// OrderID returns the owning order's identity.
func (b *Booking) OrderID() kernel.UUID { return b.orderID }

// BuyableID returns the identity of the purchased item.
func (b *Booking) BuyableID() kernel.UUID { return b.buyableID }

// VendorID returns the vendor this booking belongs to.
func (b *Booking) VendorID() kernel.UUID { return b.vendorID }

// Title returns the item title captured at checkout.
func (b *Booking) Title() string { return b.title }

// Comment returns the buyer's per-line comment.
func (b *Booking) Comment() string { return b.comment }

// Quantity returns the purchased quantity.
func (b *Booking) Quantity() decimal.Decimal { return b.quantity }

// QuantityUnit returns the display unit of the quantity, e.g. "items".
func (b *Booking) QuantityUnit() string { return b.quantityUnit }

// UnitNet returns the per-unit net price.
func (b *Booking) UnitNet() kernel.Money { return b.unitNet }

// VATRate returns the VAT rate captured at checkout.
func (b *Booking) VATRate() kernel.VATRate { return b.vatRate }

// Status returns the main lifecycle state.
func (b *Booking) Status() Status { return b.status }

// Salaried returns the paid state.
func (b *Booking) Salaried() Salaried { return b.salaried }

// Exported reports whether the booking was already picked up by an export run.
func (b *Booking) Exported() bool { return b.exported }

// Position returns the insertion index of the booking within its order.
func (b *Booking) Position() int { return b.position }

// StateChangedAt returns the time of the last main-state change.
func (b *Booking) StateChangedAt() time.Time { return b.stateChangedAt }

// IsActive reports whether the booking participates in aggregation. Cancelled
// bookings are retained but excluded.
func (b *Booking) IsActive() bool {
	return b.status != StatusCancelled
}

// LineNet returns quantity × unit net − discount. Pricing construction
// guarantees a shared currency and a non-negative result.
func (b *Booking) LineNet() kernel.Money {
	gross := b.unitNet.MulQuantity(b.quantity)
	net, _ := gross.Sub(b.discountNet)
	return net
}

// LineVat returns the VAT amount of the discounted line net.
func (b *Booking) LineVat() kernel.Money {
	return b.LineNet().PercentOf(b.vatRate)
}

// DiscountNet returns the line discount.
func (b *Booking) DiscountNet() kernel.Money {
	return b.discountNet
}

// DiscountVat returns the VAT share of the line discount.
func (b *Booking) DiscountVat() kernel.Money {
	return b.discountNet.PercentOf(b.vatRate)
}

// ApplyTransition runs a main-state transition. It returns whether the state
// actually changed: a transition to the already-reached state is a harmless
// no-op, anything else undefined from the current state fails with
// IllegalTransition and no mutation.
func (b *Booking) ApplyTransition(t Transition, at time.Time) (bool, error) {
	next, err := b.status.Apply(t)
	if err != nil {
		return false, err
	}
	if next == b.status {
		return false, nil
	}

	b.status = next
	b.stateChangedAt = at
	return true, nil
}

// Reserve marks a freshly created booking as oversold at checkout. Reserved
// is only entered here; the transition machine moves it forward once stock
// is confirmed.
func (b *Booking) Reserve(at time.Time) error {
	if b.status != StatusNew {
		return errs.NewIllegalTransitionError("reserve", b.status.String())
	}
	b.status = StatusReserved
	b.stateChangedAt = at
	return nil
}

// ApplySalariedTransition runs a paid-state transition. Cancelled bookings
// freeze the flag: the last paid state before cancellation is what refunds
// reconcile against.
func (b *Booking) ApplySalariedTransition(t SalariedTransition) (bool, error) {
	if b.status == StatusCancelled {
		return false, errs.NewIllegalTransitionError(string(t), b.status.String())
	}

	next, err := b.salaried.Apply(t)
	if err != nil {
		return false, err
	}
	if next == b.salaried {
		return false, nil
	}

	b.salaried = next
	return true, nil
}

// Correct replaces the pricing fields of a not-yet-finalized booking: a price
// fix or a vendor-granted discount after checkout. The currency is immutable,
// and finished or cancelled bookings reject correction.
func (b *Booking) Correct(unitNet, discountNet kernel.Money, vatRate kernel.VATRate) error {
	if b.status.IsTerminal() {
		return errs.NewIllegalTransitionError("correct", b.status.String())
	}
	if err := unitNet.Validate(); err == nil && unitNet.Currency() != b.unitNet.Currency() {
		return errs.NewInvalidBookingDataErrorWithCause("unitNet",
			errs.NewCurrencyMismatchError(b.unitNet.Currency(), unitNet.Currency()))
	}

	prevRate := b.vatRate
	if err := b.setVATRate(vatRate); err != nil {
		return err
	}
	if err := b.setPricing(unitNet, discountNet); err != nil {
		b.vatRate = prevRate
		return err
	}
	return nil
}

// UpdateComment replaces the buyer comment.
func (b *Booking) UpdateComment(comment string) {
	b.comment = comment
}

// MarkExported flags the booking as picked up by an export run. It returns
// whether the flag actually flipped.
func (b *Booking) MarkExported() bool {
	if b.exported {
		return false
	}
	b.exported = true
	return true
}
