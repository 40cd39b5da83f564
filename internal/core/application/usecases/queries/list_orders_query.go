package queries

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// ListOrdersFilter narrows an order listing. Zero values mean "no filter".
// State and Salaried take canonical booking state codes; Search matches
// ordernumber, creator and booking titles case-insensitively. VendorID
// restricts the listing to one vendor and must be covered by the scope.
type ListOrdersFilter struct {
	VendorID *kernel.UUID
	Creator  string
	State    string
	Salaried string
	Search   string
	Limit    int
	Offset   int
}

// ListOrdersQuery lists orders visible to the caller's scope: orders with at
// least one booking of a scoped vendor. An order whose bookings all belong
// to other vendors does not exist for this caller.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	scope  kernel.Scope
	filter ListOrdersFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. The vendor filter, when set,
// is narrowed against the scope here, so an out-of-scope vendor fails with
// Unauthorized before any SQL runs.
func NewListOrdersQuery(scope kernel.Scope, filter ListOrdersFilter) (ListOrdersQuery, error) {
	if err := scope.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	if filter.VendorID != nil {
		narrowed, err := scope.Narrow(*filter.VendorID)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		scope = narrowed
	}

	if filter.State != "" {
		if _, err := booking.ParseStatus(filter.State); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.Salaried != "" {
		if _, err := booking.ParseSalaried(filter.Salaried); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 1, maxPageSize)
	}
	if filter.Offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("offset",
			fmt.Errorf("offset %d is negative", filter.Offset))
	}

	return ListOrdersQuery{
		scope:  scope,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Scope returns the effective scope, already narrowed by the vendor filter.
func (q ListOrdersQuery) Scope() kernel.Scope { return q.scope }

// Filter returns the listing filter.
func (q ListOrdersQuery) Filter() ListOrdersFilter { return q.filter }

// ListOrdersQueryResponse is one row of the order listing, with the caller's
// in-scope bookings in position order.
type ListOrdersQueryResponse struct {
	OrderID     kernel.UUID
	Ordernumber string
	Creator     string
	CreatedAt   time.Time
	Bookings    []ListedBooking
}

// ListedBooking is one booking line of a listed order. Net is the discounted
// line net rounded to two places.
type ListedBooking struct {
	Title    string
	Quantity decimal.Decimal
	Net      decimal.Decimal
	Discount decimal.Decimal
	Currency string
	State    string
	Salaried string
}
