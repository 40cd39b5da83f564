// Package queries contains read-side operations. View queries load domain
// entities and aggregate them per request; listing queries go straight to
// SQL for filterable, pageable result sets.
package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/services"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderViewQueryIsNotConstructed = errors.New(
	"GetOrderViewQuery must be created via NewGetOrderViewQuery constructor",
)

// GetOrderViewQuery requests the aggregated view of one order, resolved by
// id or by ordernumber, restricted to the caller's vendor scope.
type GetOrderViewQuery struct { //nolint:recvcheck //using for validation
	orderID     *kernel.UUID
	ordernumber string
	scope       kernel.Scope

	guard guard.ConstructorGuard
}

// NewGetOrderViewQuery creates a view query by order id.
func NewGetOrderViewQuery(orderID kernel.UUID, scope kernel.Scope) (GetOrderViewQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderViewQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	if err := scope.Validate(); err != nil {
		return GetOrderViewQuery{}, err
	}
	return GetOrderViewQuery{
		orderID: &orderID,
		scope:   scope,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrderViewQueryByOrdernumber creates a view query by the
// human-readable order number.
func NewGetOrderViewQueryByOrdernumber(ordernumber string, scope kernel.Scope) (GetOrderViewQuery, error) {
	if ordernumber == "" {
		return GetOrderViewQuery{}, errs.NewValueIsRequiredError("ordernumber")
	}
	if err := scope.Validate(); err != nil {
		return GetOrderViewQuery{}, err
	}
	return GetOrderViewQuery{
		ordernumber: ordernumber,
		scope:       scope,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrderViewQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderViewQueryIsNotConstructed)
}

// OrderID returns the order id, or nil when resolving by ordernumber.
func (q GetOrderViewQuery) OrderID() *kernel.UUID { return q.orderID }

// Ordernumber returns the ordernumber, or "" when resolving by id.
func (q GetOrderViewQuery) Ordernumber() string { return q.ordernumber }

// Scope returns the caller's vendor scope.
func (q GetOrderViewQuery) Scope() kernel.Scope { return q.scope }

// BookingRow is one booking line of the order view, with display-ready
// codes. Amounts are rounded decimals. Transitions and SalariedTransitions
// list the transition codes legal from the booking's current states, so
// action menus can be rendered without re-deriving the state machine.
type BookingRow struct {
	BookingID           kernel.UUID
	Title               string
	Comment             string
	Quantity            decimal.Decimal
	QuantityUnit        string
	Net                 decimal.Decimal
	Vat                 decimal.Decimal
	DiscountNet         decimal.Decimal
	Currency            string
	State               string
	Salaried            string
	Exported            bool
	ChangedAt           time.Time
	Transitions         []string
	SalariedTransitions []string
}

// GetOrderViewQueryResponse carries the aggregated view, the order-level
// labels and passthrough attributes, and the in-scope booking rows.
type GetOrderViewQueryResponse struct {
	View          services.OrderView
	PaymentLabel  string
	ShippingLabel string
	Attrs         map[string]string
	Bookings      []BookingRow
}
