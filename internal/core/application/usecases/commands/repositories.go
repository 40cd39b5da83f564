// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent shape: a guarded command
// value with validated construction, and a handler that manages the
// transaction boundary.
package commands

import (
	"context"

	"orders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Handlers declare the narrowest repository surface they need.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BookingRepoFactory provides access to the booking repository within a
	// transaction.
	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	// StockConfirmationRepoFactory provides access to the stock confirmation
	// repository within a transaction.
	StockConfirmationRepoFactory interface {
		StockConfirmationRepository() ports.StockConfirmationRepository
	}

	// BookingUoW manages transactions for booking-only operations.
	BookingUoW interface {
		TxManager
		BookingRepoFactory
	}

	// BookingUoWFactory creates new booking unit of work instances.
	BookingUoWFactory interface {
		Create() BookingUoW
	}

	// OrderUoW manages transactions spanning an order and its bookings.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		BookingRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReservationUoW manages transactions of the reservation confirmation
	// flow: reserved bookings plus the stock confirmation records.
	ReservationUoW interface {
		TxManager
		BookingRepoFactory
		StockConfirmationRepoFactory
	}

	// ReservationUoWFactory creates new reservation unit of work instances.
	ReservationUoWFactory interface {
		Create() ReservationUoW
	}
)
