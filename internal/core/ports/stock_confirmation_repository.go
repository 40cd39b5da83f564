package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// StockConfirmationRepository records buyables whose stock shortage was
// resolved. The purchasing flow adds confirmations; the reservation
// confirmation job drains them, promoting the reserved bookings of each
// confirmed buyable.
type StockConfirmationRepository interface {
	// Add records a stock confirmation for a buyable. Recording the same
	// buyable again before it is processed is a no-op.
	Add(ctx context.Context, buyableID kernel.UUID) error

	// GetUnprocessed lists buyables with a pending confirmation.
	GetUnprocessed(ctx context.Context) ([]kernel.UUID, error)

	// MarkProcessed flags a confirmation as consumed by the job.
	MarkProcessed(ctx context.Context, buyableID kernel.UUID) error
}
