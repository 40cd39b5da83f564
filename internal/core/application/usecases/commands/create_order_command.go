package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItem is one cart line of a checkout. Reserved marks lines whose
// buyable was oversold at checkout time; their bookings start in reserved
// state and wait for stock confirmation.
type OrderItem struct {
	BookingID    kernel.UUID
	BuyableID    kernel.UUID
	VendorID     kernel.UUID
	Title        string
	Comment      string
	Quantity     decimal.Decimal
	QuantityUnit string
	UnitNet      kernel.Money
	DiscountNet  kernel.Money
	VATRate      kernel.VATRate
	Reserved     bool
}

// CreateOrderCommand represents a checkout: the order-level data plus the
// cart lines that become bookings. Item fields are validated by the domain
// constructors when the handler unrolls the cart.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	ordernumber string
	creator     string

	shippingNet     kernel.Money
	shippingVat     kernel.Money
	cartDiscountNet kernel.Money
	cartDiscountVat kernel.Money

	paymentLabel  string
	shippingLabel string
	attrs         map[string]string
	items         []OrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a checkout command. Requires a valid order
// id, an ordernumber, a creator and at least one cart line.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	ordernumber string,
	creator string,
	shippingNet kernel.Money,
	shippingVat kernel.Money,
	cartDiscountNet kernel.Money,
	cartDiscountVat kernel.Money,
	paymentLabel string,
	shippingLabel string,
	attrs map[string]string,
	items []OrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		shippingNet:     shippingNet,
		shippingVat:     shippingVat,
		cartDiscountNet: cartDiscountNet,
		cartDiscountVat: cartDiscountVat,
		paymentLabel:    paymentLabel,
		shippingLabel:   shippingLabel,
		attrs:           attrs,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrdernumber(ordernumber),
		cmd.setCreator(creator),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identity of the order to create.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Ordernumber returns the human-readable order number.
func (c CreateOrderCommand) Ordernumber() string { return c.ordernumber }

// Creator returns the buyer identity.
func (c CreateOrderCommand) Creator() string { return c.creator }

// ShippingNet returns the net shipping amount.
func (c CreateOrderCommand) ShippingNet() kernel.Money { return c.shippingNet }

// ShippingVat returns the VAT on shipping.
func (c CreateOrderCommand) ShippingVat() kernel.Money { return c.shippingVat }

// CartDiscountNet returns the cart-wide net discount.
func (c CreateOrderCommand) CartDiscountNet() kernel.Money { return c.cartDiscountNet }

// CartDiscountVat returns the VAT share of the cart-wide discount.
func (c CreateOrderCommand) CartDiscountVat() kernel.Money { return c.cartDiscountVat }

// PaymentLabel returns the selected payment method label.
func (c CreateOrderCommand) PaymentLabel() string { return c.paymentLabel }

// ShippingLabel returns the selected shipping method label.
func (c CreateOrderCommand) ShippingLabel() string { return c.shippingLabel }

// Attrs returns the opaque checkout attributes.
func (c CreateOrderCommand) Attrs() map[string]string { return c.attrs }

// Items returns the cart lines.
func (c CreateOrderCommand) Items() []OrderItem { return c.items }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrdernumber(ordernumber string) error {
	if ordernumber == "" {
		return errs.NewValueIsRequiredError("ordernumber")
	}
	c.ordernumber = ordernumber
	return nil
}

func (c *CreateOrderCommand) setCreator(creator string) error {
	if creator == "" {
		return errs.NewValueIsRequiredError("creator")
	}
	c.creator = creator
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = items
	return nil
}
