package queries

import (
	"context"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
)

// GetOrderViewQueryHandler loads an order with its bookings and aggregates
// them for the caller's scope. The view is derived on every request; nothing
// aggregated is ever read from storage.
type GetOrderViewQueryHandler struct {
	orderRepo   ports.OrderRepository
	bookingRepo ports.BookingRepository
	aggregator  services.OrderAggregator
}

// NewGetOrderViewQueryHandler creates an order view handler.
func NewGetOrderViewQueryHandler(
	orderRepo ports.OrderRepository,
	bookingRepo ports.BookingRepository,
	aggregator services.OrderAggregator,
) GetOrderViewQueryHandler {
	return GetOrderViewQueryHandler{
		orderRepo:   orderRepo,
		bookingRepo: bookingRepo,
		aggregator:  aggregator,
	}
}

// Handle resolves the order, aggregates the scoped view and renders the
// in-scope booking rows.
func (h GetOrderViewQueryHandler) Handle(
	ctx context.Context, query GetOrderViewQuery,
) (GetOrderViewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderViewQueryResponse{}, err
	}

	ord, err := h.resolve(ctx, query)
	if err != nil {
		return GetOrderViewQueryResponse{}, err
	}

	bookings, err := h.bookingRepo.GetAllForOrder(ctx, ord.ID())
	if err != nil {
		return GetOrderViewQueryResponse{}, err
	}

	view, err := h.aggregator.Aggregate(ord, bookings, query.Scope())
	if err != nil {
		return GetOrderViewQueryResponse{}, err
	}

	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		if !query.Scope().Authorizes(b.VendorID()) {
			continue
		}
		rows = append(rows, bookingRow(b))
	}

	return GetOrderViewQueryResponse{
		View:          view,
		PaymentLabel:  ord.PaymentLabel(),
		ShippingLabel: ord.ShippingLabel(),
		Attrs:         ord.Attrs(),
		Bookings:      rows,
	}, nil
}

func (h GetOrderViewQueryHandler) resolve(
	ctx context.Context, query GetOrderViewQuery,
) (*order.Order, error) {
	if query.OrderID() != nil {
		return h.orderRepo.Get(ctx, *query.OrderID())
	}
	return h.orderRepo.GetByOrdernumber(ctx, query.Ordernumber())
}

func bookingRow(b *booking.Booking) BookingRow {
	// A cancelled booking freezes its paid flag, so no salaried transition
	// is offered for it.
	var salariedTransitions []string
	if b.Status() != booking.StatusCancelled {
		salariedTransitions = salariedTransitionCodes(booking.SalariedTransitionsFrom(b.Salaried()))
	}

	return BookingRow{
		BookingID:           b.ID(),
		Title:               b.Title(),
		Comment:             b.Comment(),
		Quantity:            b.Quantity(),
		QuantityUnit:        b.QuantityUnit(),
		Net:                 b.LineNet().Rounded(),
		Vat:                 b.LineVat().Rounded(),
		DiscountNet:         b.DiscountNet().Rounded(),
		Currency:            b.UnitNet().Currency(),
		State:               b.Status().String(),
		Salaried:            b.Salaried().String(),
		Exported:            b.Exported(),
		ChangedAt:           b.StateChangedAt(),
		Transitions:         transitionCodes(booking.TransitionsFrom(b.Status())),
		SalariedTransitions: salariedTransitions,
	}
}

func transitionCodes(transitions []booking.Transition) []string {
	codes := make([]string, 0, len(transitions))
	for _, t := range transitions {
		codes = append(codes, string(t))
	}
	return codes
}

func salariedTransitionCodes(transitions []booking.SalariedTransition) []string {
	codes := make([]string, 0, len(transitions))
	for _, t := range transitions {
		codes = append(codes, string(t))
	}
	return codes
}
