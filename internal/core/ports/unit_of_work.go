package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request or
// command, keeping concurrent operations isolated.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Client code manages
// the transaction lifecycle explicitly; repositories obtained from a unit of
// work are bound to its transaction, so a rollback discards every entity and
// aggregate change of the operation together.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// BookingRepository returns a BookingRepository bound to the current
	// transaction.
	BookingRepository() BookingRepository

	// StockConfirmationRepository returns a StockConfirmationRepository
	// bound to the current transaction.
	StockConfirmationRepository() StockConfirmationRepository
}
