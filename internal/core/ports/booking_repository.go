package ports

import (
	"context"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"
)

// BookingRepository defines the persistence contract for booking entities.
// Reads are not scope-filtered here: handlers and the aggregator apply the
// vendor scope themselves, so an out-of-scope access can be reported as
// Unauthorized instead of hiding behind ObjectNotFound. Listing queries that
// must filter at SQL level live in the query layer.
type BookingRepository interface {
	// Add persists a new booking.
	Add(ctx context.Context, aggregate *booking.Booking) error

	// Update persists changes to an existing booking.
	Update(ctx context.Context, aggregate *booking.Booking) error

	// Get retrieves a booking by its identifier. Returns ObjectNotFound
	// when the id does not resolve.
	Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error)

	// GetAllForOrder retrieves all bookings of one order in insertion order.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*booking.Booking, error)

	// GetAllReservedForBuyable retrieves reserved bookings of one buyable
	// across orders, for reservation confirmation.
	GetAllReservedForBuyable(ctx context.Context, buyableID kernel.UUID) ([]*booking.Booking, error)
}
