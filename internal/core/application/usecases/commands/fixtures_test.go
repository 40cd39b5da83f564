package commands_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(amount, "EUR")
	require.NoError(t, err)
	return m
}

func vat21(t *testing.T) kernel.VATRate {
	t.Helper()
	r, err := kernel.NewVATRateFromString("21")
	require.NoError(t, err)
	return r
}

func scopeOf(t *testing.T, vendorIDs ...kernel.UUID) kernel.Scope {
	t.Helper()
	s, err := kernel.NewScope(vendorIDs...)
	require.NoError(t, err)
	return s
}

func fixtureOrder(t *testing.T) *order.Order {
	t.Helper()
	zero := money(t, "0.00")
	o, err := order.NewOrder(
		kernel.NewUUID(), "2026-0001", "buyer@example.org",
		zero, zero, zero, zero, "Invoice", "Standard mail", nil, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func fixtureBooking(t *testing.T, orderID, vendorID kernel.UUID, status booking.Status) *booking.Booking {
	t.Helper()
	return fixtureBookingWithID(t, kernel.NewUUID(), orderID, vendorID, status)
}

func fixtureBookingWithID(t *testing.T, id, orderID, vendorID kernel.UUID, status booking.Status) *booking.Booking {
	t.Helper()
	b, err := booking.RestoreBooking(
		id, orderID, kernel.NewUUID(), vendorID,
		"Ticket", "", decimal.NewFromInt(1), "items",
		money(t, "10.00"), money(t, "0.00"), vat21(t),
		status, booking.SalariedNo, false, 0, time.Now(),
	)
	require.NoError(t, err)
	return b
}
