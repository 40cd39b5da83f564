package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists a checkout: the order aggregate plus one
// booking per cart line, all within a single transaction. Bookings of
// oversold lines start reserved instead of new.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for checkout persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle unrolls the cart into domain entities and persists them atomically.
// A validation failure on any line aborts the whole checkout.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	ord, err := order.NewOrder(
		cmd.OrderID(), cmd.Ordernumber(), cmd.Creator(),
		cmd.ShippingNet(), cmd.ShippingVat(),
		cmd.CartDiscountNet(), cmd.CartDiscountVat(),
		cmd.PaymentLabel(), cmd.ShippingLabel(),
		cmd.Attrs(), now,
	)
	if err != nil {
		return err
	}

	bookings := make([]*booking.Booking, 0, len(cmd.Items()))
	for position, item := range cmd.Items() {
		b, err := booking.NewBooking(
			item.BookingID, ord.ID(), item.BuyableID, item.VendorID,
			item.Title, item.Comment,
			item.Quantity, item.QuantityUnit,
			item.UnitNet, item.DiscountNet, item.VATRate,
			position, now,
		)
		if err != nil {
			return err
		}
		if item.Reserved {
			if err := b.Reserve(now); err != nil {
				return err
			}
		}
		if err := ord.AddBooking(b.ID()); err != nil {
			return err
		}
		bookings = append(bookings, b)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, ord); err != nil {
		return err
	}
	for _, b := range bookings {
		if err := uow.BookingRepository().Add(ctx, b); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
