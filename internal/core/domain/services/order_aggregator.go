package services

import (
	"time"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderView is the derived read-side representation of an order for one
// vendor scope. All amounts are rounded to kernel.MoneyScale digits; the
// underlying computation keeps full precision throughout.
//
// Currency is nil when the in-scope active bookings disagree on currency;
// the amounts are still summed numerically so the figures stay comparable
// with the original records.
type OrderView struct {
	OrderID     kernel.UUID
	Ordernumber string
	Creator     string
	CreatedAt   time.Time

	Net         decimal.Decimal
	Vat         decimal.Decimal
	DiscountNet decimal.Decimal
	DiscountVat decimal.Decimal
	ShippingNet decimal.Decimal
	ShippingVat decimal.Decimal
	Total       decimal.Decimal

	Currency  *string
	MainState order.MainState
	Salaried  booking.Salaried
}

// StatePolicy picks the aggregate main state when active bookings disagree
// and the reserved-vs-other rule does not apply. It receives the in-scope
// active bookings in insertion order and must return one of their states.
type StatePolicy func(bookings []*booking.Booking) booking.Status

// MostRecentlyChangedPolicy picks the state of the booking whose main state
// changed last. Ties resolve to the earliest insertion position, which keeps
// the result deterministic for bookings created in one checkout.
func MostRecentlyChangedPolicy(bookings []*booking.Booking) booking.Status {
	winner := bookings[0]
	for _, b := range bookings[1:] {
		if b.StateChangedAt().After(winner.StateChangedAt()) {
			winner = b
		}
	}
	return winner.Status()
}

// OrderAggregator derives OrderViews. The zero value is not usable; create
// instances via NewOrderAggregator.
type OrderAggregator struct {
	statePolicy StatePolicy
}

// AggregatorOption configures an OrderAggregator.
type AggregatorOption func(*OrderAggregator)

// WithStatePolicy replaces the disagreement tie-break policy.
func WithStatePolicy(policy StatePolicy) AggregatorOption {
	return func(a *OrderAggregator) {
		a.statePolicy = policy
	}
}

// NewOrderAggregator creates an aggregator with MostRecentlyChangedPolicy as
// the default disagreement policy.
func NewOrderAggregator(opts ...AggregatorOption) OrderAggregator {
	a := OrderAggregator{statePolicy: MostRecentlyChangedPolicy}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Aggregate computes the order view over the bookings visible to the scope.
//
// Bookings outside the scope are excluded as if they did not exist; cancelled
// bookings are excluded from amounts and state. A booking that fails
// validation aborts the whole aggregation with InvalidBookingData rather
// than silently understating totals. An empty scope is Unauthorized.
func (a OrderAggregator) Aggregate(
	ord *order.Order, bookings []*booking.Booking, scope kernel.Scope,
) (OrderView, error) {
	if err := ord.Validate(); err != nil {
		return OrderView{}, err
	}
	if err := scope.Validate(); err != nil {
		return OrderView{}, err
	}

	active, err := a.visibleActive(ord, bookings, scope)
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		OrderID:     ord.ID(),
		Ordernumber: ord.Ordernumber(),
		Creator:     ord.Creator(),
		CreatedAt:   ord.CreatedAt(),
	}

	if err := a.sumAmounts(&view, ord, active); err != nil {
		return OrderView{}, err
	}
	view.MainState = a.mainState(active)
	view.Salaried = a.salaried(active)

	return view, nil
}

// visibleActive filters bookings to the scope's vendors and active states,
// validating each record on the way.
func (a OrderAggregator) visibleActive(
	ord *order.Order, bookings []*booking.Booking, scope kernel.Scope,
) ([]*booking.Booking, error) {
	active := make([]*booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		if err := b.Validate(); err != nil {
			return nil, errs.NewInvalidBookingDataErrorWithCause("booking", err)
		}
		if !b.OrderID().IsEqual(ord.ID()) {
			return nil, errs.NewInvalidBookingDataError("booking does not belong to the order")
		}
		if !scope.Authorizes(b.VendorID()) {
			continue
		}
		if !b.IsActive() {
			continue
		}
		active = append(active, b)
	}
	return active, nil
}

// sumAmounts accumulates the monetary figures. Amounts are summed as raw
// decimals with the currency tracked alongside: a currency disagreement
// between bookings yields a nil view currency instead of an error, while a
// disagreement between booking currency and non-zero order-level amounts is
// a hard CurrencyMismatch.
func (a OrderAggregator) sumAmounts(view *OrderView, ord *order.Order, active []*booking.Booking) error {
	var net, vat, discountNet, discountVat decimal.Decimal

	currencies := map[string]struct{}{}
	for _, b := range active {
		gross := b.UnitNet().MulQuantity(b.Quantity())
		net = net.Add(gross.Amount())
		vat = vat.Add(gross.PercentOf(b.VATRate()).Amount())
		discountNet = discountNet.Add(b.DiscountNet().Amount())
		discountVat = discountVat.Add(b.DiscountVat().Amount())
		currencies[b.UnitNet().Currency()] = struct{}{}
	}

	orderCurrency := ord.ShippingNet().Currency()
	orderAmountsZero := ord.ShippingNet().Amount().IsZero() &&
		ord.ShippingVat().Amount().IsZero() &&
		ord.CartDiscountNet().Amount().IsZero() &&
		ord.CartDiscountVat().Amount().IsZero()

	switch len(currencies) {
	case 0:
		view.Currency = &orderCurrency
	case 1:
		var bookingCurrency string
		for c := range currencies {
			bookingCurrency = c
		}
		if bookingCurrency != orderCurrency && !orderAmountsZero {
			return errs.NewCurrencyMismatchError(bookingCurrency, orderCurrency)
		}
		view.Currency = &bookingCurrency
	default:
		view.Currency = nil
	}

	discountNet = discountNet.Add(ord.CartDiscountNet().Amount())
	discountVat = discountVat.Add(ord.CartDiscountVat().Amount())
	shippingNet := ord.ShippingNet().Amount()
	shippingVat := ord.ShippingVat().Amount()

	total := net.Add(vat).
		Sub(discountNet).Sub(discountVat).
		Add(shippingNet).Add(shippingVat)
	if total.IsNegative() {
		total = decimal.Zero
	}

	view.Net = net.Round(kernel.MoneyScale)
	view.Vat = vat.Round(kernel.MoneyScale)
	view.DiscountNet = discountNet.Round(kernel.MoneyScale)
	view.DiscountVat = discountVat.Round(kernel.MoneyScale)
	view.ShippingNet = shippingNet.Round(kernel.MoneyScale)
	view.ShippingVat = shippingVat.Round(kernel.MoneyScale)
	view.Total = total.Round(kernel.MoneyScale)
	return nil
}

// mainState derives the aggregate main state:
//
//   - no active bookings: cancelled
//   - all active bookings in one state: that state
//   - reserved bookings next to any other active state: mixed
//   - otherwise: the configured disagreement policy picks a winner
func (a OrderAggregator) mainState(active []*booking.Booking) order.MainState {
	if len(active) == 0 {
		return order.MainStateCancelled
	}

	states := map[booking.Status]struct{}{}
	for _, b := range active {
		states[b.Status()] = struct{}{}
	}

	if len(states) == 1 {
		return order.MainStateFromBookingStatus(active[0].Status())
	}
	if _, hasReserved := states[booking.StatusReserved]; hasReserved {
		return order.MainStateMixed
	}
	return order.MainStateFromBookingStatus(a.statePolicy(active))
}

// salaried is yes only when every active booking is paid. An order with no
// active bookings reports unpaid.
func (a OrderAggregator) salaried(active []*booking.Booking) booking.Salaried {
	if len(active) == 0 {
		return booking.SalariedNo
	}
	for _, b := range active {
		if b.Salaried() != booking.SalariedYes {
			return booking.SalariedNo
		}
	}
	return booking.SalariedYes
}
