package queries

import (
	"context"
	"strings"

	"orders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists orders straight from SQL. The scope is an
// EXISTS predicate over the bookings table, so every filter (state, salaried,
// search) only sees bookings the caller is authorized for.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a listing handler.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. Results are ordered newest-first with the
// ordernumber as a stable tie-break.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context, query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	vendorIDs := make([]uuid.UUID, 0, len(query.Scope().VendorIDs()))
	for _, id := range query.Scope().VendorIDs() {
		vendorIDs = append(vendorIDs, id.Bytes())
	}

	filter := query.Filter()

	var sql strings.Builder
	args := []any{vendorIDs}

	sql.WriteString(`
		SELECT o.id, o.ordernumber, o.creator, o.created_at
		FROM orders o
		WHERE EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.order_id = o.id
			  AND b.vendor_id IN ?`)
	if filter.State != "" {
		sql.WriteString(`
			  AND b.status = ?`)
		args = append(args, filter.State)
	}
	if filter.Salaried != "" {
		sql.WriteString(`
			  AND b.salaried = ?`)
		args = append(args, filter.Salaried)
	}
	sql.WriteString(`
		)`)

	if filter.Creator != "" {
		sql.WriteString(`
		  AND o.creator = ?`)
		args = append(args, filter.Creator)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		sql.WriteString(`
		  AND (o.ordernumber ILIKE ? OR o.creator ILIKE ? OR EXISTS (
			SELECT 1 FROM bookings bs
			WHERE bs.order_id = o.id AND bs.vendor_id IN ? AND bs.title ILIKE ?
		  ))`)
		args = append(args, pattern, pattern, vendorIDs, pattern)
	}

	sql.WriteString(`
		ORDER BY o.created_at DESC, o.ordernumber DESC
		LIMIT ? OFFSET ?`)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := h.db.WithContext(ctx).Raw(sql.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var row ListOrdersQueryResponse
		var id uuid.UUID

		if err := rows.Scan(&id, &row.Ordernumber, &row.Creator, &row.CreatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		row.OrderID = orderID
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := h.attachBookings(ctx, results, vendorIDs); err != nil {
		return nil, err
	}

	return results, nil
}

// attachBookings loads the in-scope booking lines of the listed orders in one
// query and distributes them onto the result rows.
func (h ListOrdersQueryHandler) attachBookings(
	ctx context.Context, results []ListOrdersQueryResponse, vendorIDs []uuid.UUID,
) error {
	if len(results) == 0 {
		return nil
	}

	orderIDs := make([]uuid.UUID, 0, len(results))
	byOrder := make(map[kernel.UUID]int, len(results))
	for i, row := range results {
		orderIDs = append(orderIDs, row.OrderID.Bytes())
		byOrder[row.OrderID] = i
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT order_id, title, quantity, unit_net, discount_net, currency, status, salaried
		FROM bookings
		WHERE order_id IN ? AND vendor_id IN ?
		ORDER BY order_id, position`, orderIDs, vendorIDs).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                   uuid.UUID
			line                 ListedBooking
			unitNet, discountNet decimal.Decimal
		)
		if err := rows.Scan(&id, &line.Title, &line.Quantity, &unitNet,
			&discountNet, &line.Currency, &line.State, &line.Salaried); err != nil {
			return err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}

		line.Net = line.Quantity.Mul(unitNet).Sub(discountNet).Round(kernel.MoneyScale)
		line.Discount = discountNet.Round(kernel.MoneyScale)

		if i, ok := byOrder[orderID]; ok {
			results[i].Bookings = append(results[i].Bookings, line)
		}
	}

	return rows.Err()
}
