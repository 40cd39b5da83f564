package order

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of one checkout. It carries the order-level
// amounts (shipping, cart-wide discount), the labels of the selected payment
// and shipping methods, and the opaque checkout attributes (personal, billing
// and delivery data) that the core stores and returns without interpreting.
//
// Invariants:
//   - ordernumber is a non-empty human-readable identifier, unique per order
//   - all order-level amounts share one currency
//   - the booking list is insertion-ordered and append-only
//   - orders are never deleted; cancellation happens on bookings
type Order struct {
	id          kernel.UUID
	ordernumber string
	creator     string
	createdAt   time.Time

	shippingNet     kernel.Money
	shippingVat     kernel.Money
	cartDiscountNet kernel.Money
	cartDiscountVat kernel.Money

	paymentLabel  string
	shippingLabel string

	attrs      map[string]string
	bookingIDs []kernel.UUID

	isConstructed bool
}

// NewOrder creates an order at checkout time with an empty booking list.
// Bookings are appended via AddBooking as the checkout cart is unrolled.
func NewOrder(
	id kernel.UUID,
	ordernumber string,
	creator string,
	shippingNet kernel.Money,
	shippingVat kernel.Money,
	cartDiscountNet kernel.Money,
	cartDiscountVat kernel.Money,
	paymentLabel string,
	shippingLabel string,
	attrs map[string]string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		paymentLabel:  paymentLabel,
		shippingLabel: shippingLabel,
		createdAt:     createdAt,
		isConstructed: true,
	}
	o.setAttrs(attrs)

	if err := errors.Join(
		o.setID(id),
		o.setOrdernumber(ordernumber),
		o.setCreator(creator),
	); err != nil {
		return nil, err
	}

	if err := o.setAmounts(shippingNet, shippingVat, cartDiscountNet, cartDiscountVat); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence together with its
// booking identity list.
func RestoreOrder(
	id kernel.UUID,
	ordernumber string,
	creator string,
	shippingNet kernel.Money,
	shippingVat kernel.Money,
	cartDiscountNet kernel.Money,
	cartDiscountVat kernel.Money,
	paymentLabel string,
	shippingLabel string,
	attrs map[string]string,
	bookingIDs []kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, ordernumber, creator,
		shippingNet, shippingVat, cartDiscountNet, cartDiscountVat,
		paymentLabel, shippingLabel, attrs, createdAt)
	if err != nil {
		return nil, err
	}

	o.bookingIDs = make([]kernel.UUID, len(bookingIDs))
	copy(o.bookingIDs, bookingIDs)
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setOrdernumber(ordernumber string) error {
	if ordernumber == "" {
		return errs.NewValueIsRequiredError("ordernumber")
	}
	o.ordernumber = ordernumber
	return nil
}

func (o *Order) setCreator(creator string) error {
	if creator == "" {
		return errs.NewValueIsRequiredError("creator")
	}
	o.creator = creator
	return nil
}

func (o *Order) setAttrs(attrs map[string]string) {
	o.attrs = make(map[string]string, len(attrs))
	for k, v := range attrs {
		o.attrs[k] = v
	}
}

// setAmounts validates the four order-level amounts as a unit: each must be
// constructed and non-negative, and all share one currency.
func (o *Order) setAmounts(shippingNet, shippingVat, cartDiscountNet, cartDiscountVat kernel.Money) error {
	amounts := []struct {
		name  string
		value kernel.Money
	}{
		{"shippingNet", shippingNet},
		{"shippingVat", shippingVat},
		{"cartDiscountNet", cartDiscountNet},
		{"cartDiscountVat", cartDiscountVat},
	}

	for _, amount := range amounts {
		if err := amount.value.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(amount.name, err)
		}
		if amount.value.IsNegative() {
			return errs.NewValueIsInvalidError(amount.name)
		}
		if amount.value.Currency() != shippingNet.Currency() {
			return errs.NewValueIsInvalidErrorWithCause(amount.name,
				errs.NewCurrencyMismatchError(shippingNet.Currency(), amount.value.Currency()))
		}
	}

	o.shippingNet = shippingNet
	o.shippingVat = shippingVat
	o.cartDiscountNet = cartDiscountNet
	o.cartDiscountVat = cartDiscountVat
	return nil
}

// AddBooking appends a booking identity to the order. The list is
// append-only; duplicates are rejected.
func (o *Order) AddBooking(bookingID kernel.UUID) error {
	if err := bookingID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("bookingID", err)
	}
	for _, existing := range o.bookingIDs {
		if existing.IsEqual(bookingID) {
			return errs.NewValueIsInvalidError("bookingID")
		}
	}
	o.bookingIDs = append(o.bookingIDs, bookingID)
	return nil
}

// ID returns the order identity.
func (o *Order) ID() kernel.UUID { return o.id }

// Ordernumber returns the human-readable order number.
func (o *Order) Ordernumber() string { return o.ordernumber }

// Creator returns the identity of the buyer who created the order.
func (o *Order) Creator() string { return o.creator }

// CreatedAt returns the checkout time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// ShippingNet returns the order-level net shipping amount.
func (o *Order) ShippingNet() kernel.Money { return o.shippingNet }

// ShippingVat returns the VAT on shipping.
func (o *Order) ShippingVat() kernel.Money { return o.shippingVat }

// CartDiscountNet returns the cart-wide net discount.
func (o *Order) CartDiscountNet() kernel.Money { return o.cartDiscountNet }

// CartDiscountVat returns the VAT share of the cart-wide discount.
func (o *Order) CartDiscountVat() kernel.Money { return o.cartDiscountVat }

// PaymentLabel returns the display label of the selected payment method.
func (o *Order) PaymentLabel() string { return o.paymentLabel }

// ShippingLabel returns the display label of the selected shipping method.
func (o *Order) ShippingLabel() string { return o.shippingLabel }

// Attrs returns a copy of the opaque checkout attributes.
func (o *Order) Attrs() map[string]string {
	attrs := make(map[string]string, len(o.attrs))
	for k, v := range o.attrs {
		attrs[k] = v
	}
	return attrs
}

// BookingIDs returns the booking identities in insertion order.
func (o *Order) BookingIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(o.bookingIDs))
	copy(ids, o.bookingIDs)
	return ids
}
