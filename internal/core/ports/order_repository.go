package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are append-mostly: added at checkout, extended with bookings, never
// deleted.
type OrderRepository interface {
	// Add persists a new order aggregate. The order must not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier. Returns ObjectNotFound when
	// the id does not resolve.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrdernumber retrieves an order by its human-readable number.
	// Returns ObjectNotFound when the number does not resolve.
	GetByOrdernumber(ctx context.Context, ordernumber string) (*order.Order, error)
}
