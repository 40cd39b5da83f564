package order

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount, currency string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(amount, currency)
	require.NoError(t, err)
	return m
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(
		kernel.NewUUID(), "2026-0001", "buyer@example.org",
		money(t, "4.00", "EUR"), money(t, "0.84", "EUR"),
		money(t, "0.00", "EUR"), money(t, "0.00", "EUR"),
		"Invoice", "Standard mail",
		map[string]string{"city": "Vienna"},
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, "2026-0001", o.Ordernumber())
		assert.Equal(t, "buyer@example.org", o.Creator())
		assert.Equal(t, "Invoice", o.PaymentLabel())
		assert.Equal(t, "Standard mail", o.ShippingLabel())
		assert.Empty(t, o.BookingIDs())
	})

	t.Run("missing ordernumber fails", func(t *testing.T) {
		_, err := NewOrder(
			kernel.NewUUID(), "", "buyer@example.org",
			money(t, "0.00", "EUR"), money(t, "0.00", "EUR"),
			money(t, "0.00", "EUR"), money(t, "0.00", "EUR"),
			"", "", nil, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing creator fails", func(t *testing.T) {
		_, err := NewOrder(
			kernel.NewUUID(), "2026-0001", "",
			money(t, "0.00", "EUR"), money(t, "0.00", "EUR"),
			money(t, "0.00", "EUR"), money(t, "0.00", "EUR"),
			"", "", nil, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("amounts must share one currency", func(t *testing.T) {
		_, err := NewOrder(
			kernel.NewUUID(), "2026-0001", "buyer@example.org",
			money(t, "4.00", "EUR"), money(t, "0.84", "USD"),
			money(t, "0.00", "EUR"), money(t, "0.00", "EUR"),
			"", "", nil, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative shipping fails", func(t *testing.T) {
		_, err := NewOrder(
			kernel.NewUUID(), "2026-0001", "buyer@example.org",
			money(t, "-4.00", "EUR"), money(t, "0.00", "EUR"),
			money(t, "0.00", "EUR"), money(t, "0.00", "EUR"),
			"", "", nil, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrderAddBooking(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		o := newTestOrder(t)
		first, second := kernel.NewUUID(), kernel.NewUUID()

		require.NoError(t, o.AddBooking(first))
		require.NoError(t, o.AddBooking(second))

		ids := o.BookingIDs()
		require.Len(t, ids, 2)
		assert.True(t, ids[0].IsEqual(first))
		assert.True(t, ids[1].IsEqual(second))
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		o := newTestOrder(t)
		id := kernel.NewUUID()

		require.NoError(t, o.AddBooking(id))
		assert.ErrorIs(t, o.AddBooking(id), errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	o, err := RestoreOrder(
		kernel.NewUUID(), "2026-0001", "buyer@example.org",
		money(t, "4.00", "EUR"), money(t, "0.84", "EUR"),
		money(t, "1.00", "EUR"), money(t, "0.21", "EUR"),
		"Invoice", "Standard mail",
		map[string]string{"city": "Vienna"}, ids, time.Now(),
	)
	require.NoError(t, err)

	restored := o.BookingIDs()
	require.Len(t, restored, 2)
	assert.True(t, restored[0].IsEqual(ids[0]))
	assert.Equal(t, map[string]string{"city": "Vienna"}, o.Attrs())
}

func TestOrderAttrsIsolation(t *testing.T) {
	o := newTestOrder(t)

	attrs := o.Attrs()
	attrs["city"] = "Graz"

	assert.Equal(t, "Vienna", o.Attrs()["city"])
}

func TestOrderValidate(t *testing.T) {
	assert.NoError(t, newTestOrder(t).Validate())
	assert.ErrorIs(t, (&Order{}).Validate(), ErrOrderIsNotConstructed)
	assert.ErrorIs(t, (*Order)(nil).Validate(), ErrOrderIsNotConstructed)
}

func TestMainStateFromBookingStatus(t *testing.T) {
	assert.Equal(t, MainStateNew, MainStateFromBookingStatus(booking.StatusNew))
	assert.Equal(t, MainStateProcessing, MainStateFromBookingStatus(booking.StatusProcessing))
	assert.Equal(t, MainStateReserved, MainStateFromBookingStatus(booking.StatusReserved))
	assert.Equal(t, MainStateFinished, MainStateFromBookingStatus(booking.StatusFinished))
	assert.Equal(t, MainStateCancelled, MainStateFromBookingStatus(booking.StatusCancelled))
}
