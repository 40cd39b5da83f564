package booking

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(amount, "EUR")
	require.NoError(t, err)
	return m
}

func vatRate(t *testing.T, value string) kernel.VATRate {
	t.Helper()
	r, err := kernel.NewVATRateFromString(value)
	require.NoError(t, err)
	return r
}

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	b, err := NewBooking(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Conference ticket", "",
		decimal.NewFromInt(2), "items",
		money(t, "12.50"), money(t, "0.00"), vatRate(t, "21"),
		0, time.Now(),
	)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("valid booking starts new and unpaid", func(t *testing.T) {
		b := newTestBooking(t)

		assert.Equal(t, StatusNew, b.Status())
		assert.Equal(t, SalariedNo, b.Salaried())
		assert.False(t, b.Exported())
		assert.True(t, b.IsActive())
		assert.Equal(t, "Conference ticket", b.Title())
		assert.Equal(t, "items", b.QuantityUnit())
	})

	t.Run("missing identities fail", func(t *testing.T) {
		_, err := NewBooking(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Ticket", "", decimal.NewFromInt(1), "items",
			money(t, "10.00"), money(t, "0.00"), vatRate(t, "21"),
			0, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("empty title fails", func(t *testing.T) {
		_, err := NewBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", "", decimal.NewFromInt(1), "items",
			money(t, "10.00"), money(t, "0.00"), vatRate(t, "21"),
			0, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero or negative quantity fails", func(t *testing.T) {
		for _, quantity := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
			_, err := NewBooking(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				"Ticket", "", quantity, "items",
				money(t, "10.00"), money(t, "0.00"), vatRate(t, "21"),
				0, time.Now(),
			)
			assert.ErrorIs(t, err, errs.ErrInvalidBookingData)
		}
	})

	t.Run("negative unit price fails", func(t *testing.T) {
		_, err := NewBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Ticket", "", decimal.NewFromInt(1), "items",
			money(t, "-10.00"), money(t, "0.00"), vatRate(t, "21"),
			0, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrInvalidBookingData)
	})

	t.Run("discount in another currency fails", func(t *testing.T) {
		discount, err := kernel.NewMoneyFromString("1.00", "USD")
		require.NoError(t, err)

		_, err = NewBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Ticket", "", decimal.NewFromInt(1), "items",
			money(t, "10.00"), discount, vatRate(t, "21"),
			0, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrInvalidBookingData)
	})

	t.Run("discount exceeding line gross fails", func(t *testing.T) {
		_, err := NewBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Ticket", "", decimal.NewFromInt(2), "items",
			money(t, "10.00"), money(t, "25.00"), vatRate(t, "21"),
			0, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrInvalidBookingData)
	})
}

func TestRestoreBooking(t *testing.T) {
	t.Run("restores state machine positions", func(t *testing.T) {
		b, err := RestoreBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Ticket", "ship fast", decimal.NewFromInt(3), "items",
			money(t, "10.00"), money(t, "5.00"), vatRate(t, "21"),
			StatusProcessing, SalariedYes, true, 2, time.Now(),
		)
		require.NoError(t, err)

		assert.Equal(t, StatusProcessing, b.Status())
		assert.Equal(t, SalariedYes, b.Salaried())
		assert.True(t, b.Exported())
		assert.Equal(t, 2, b.Position())
		assert.Equal(t, "ship fast", b.Comment())
	})

	t.Run("cancelled booking may carry zero quantity", func(t *testing.T) {
		b, err := RestoreBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Ticket", "", decimal.Zero, "items",
			money(t, "10.00"), money(t, "0.00"), vatRate(t, "21"),
			StatusCancelled, SalariedNo, false, 0, time.Now(),
		)
		require.NoError(t, err)
		assert.False(t, b.IsActive())
	})

	t.Run("invalid status fails", func(t *testing.T) {
		_, err := RestoreBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Ticket", "", decimal.NewFromInt(1), "items",
			money(t, "10.00"), money(t, "0.00"), vatRate(t, "21"),
			Status(42), SalariedNo, false, 0, time.Now(),
		)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestBookingValidate(t *testing.T) {
	assert.NoError(t, newTestBooking(t).Validate())
	assert.ErrorIs(t, (&Booking{}).Validate(), ErrBookingIsNotConstructed)
	assert.ErrorIs(t, (*Booking)(nil).Validate(), ErrBookingIsNotConstructed)
}

func TestBookingLineFigures(t *testing.T) {
	t.Run("line net is quantity times unit minus discount", func(t *testing.T) {
		b, err := NewBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Ticket", "", decimal.NewFromInt(3), "items",
			money(t, "10.00"), money(t, "5.00"), vatRate(t, "21"),
			0, time.Now(),
		)
		require.NoError(t, err)

		assert.True(t, b.LineNet().IsEqual(money(t, "25.00")))
		assert.True(t, b.LineVat().IsEqual(money(t, "5.25")))
		assert.True(t, b.DiscountNet().IsEqual(money(t, "5.00")))
		assert.True(t, b.DiscountVat().IsEqual(money(t, "1.05")))
	})

	t.Run("fractional quantities keep full precision", func(t *testing.T) {
		quantity, err := decimal.NewFromString("0.5")
		require.NoError(t, err)

		b, err := NewBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Flour", "", quantity, "kg",
			money(t, "3.33"), money(t, "0.00"), vatRate(t, "7"),
			0, time.Now(),
		)
		require.NoError(t, err)

		assert.Equal(t, "1.67", b.LineNet().Rounded().StringFixed(2))
	})
}

func TestBookingApplyTransition(t *testing.T) {
	t.Run("changes state and timestamp", func(t *testing.T) {
		b := newTestBooking(t)
		before := b.StateChangedAt()
		at := before.Add(time.Hour)

		changed, err := b.ApplyTransition(TransitionProcess, at)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, StatusProcessing, b.Status())
		assert.Equal(t, at, b.StateChangedAt())
	})

	t.Run("no-op keeps the timestamp", func(t *testing.T) {
		b := newTestBooking(t)
		_, err := b.ApplyTransition(TransitionProcess, time.Now())
		require.NoError(t, err)
		before := b.StateChangedAt()

		changed, err := b.ApplyTransition(TransitionProcess, before.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, before, b.StateChangedAt())
	})

	t.Run("illegal transition leaves the booking untouched", func(t *testing.T) {
		b := newTestBooking(t)

		changed, err := b.ApplyTransition(TransitionFinish, time.Now())
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.False(t, changed)
		assert.Equal(t, StatusNew, b.Status())
	})
}

func TestBookingReserve(t *testing.T) {
	t.Run("new booking becomes reserved", func(t *testing.T) {
		b := newTestBooking(t)
		at := time.Now().Add(time.Minute)

		require.NoError(t, b.Reserve(at))
		assert.Equal(t, StatusReserved, b.Status())
		assert.Equal(t, at, b.StateChangedAt())
	})

	t.Run("only new bookings can be reserved", func(t *testing.T) {
		b := newTestBooking(t)
		_, err := b.ApplyTransition(TransitionProcess, time.Now())
		require.NoError(t, err)

		assert.ErrorIs(t, b.Reserve(time.Now()), errs.ErrIllegalTransition)
	})
}

func TestBookingApplySalariedTransition(t *testing.T) {
	t.Run("mark paid", func(t *testing.T) {
		b := newTestBooking(t)

		changed, err := b.ApplySalariedTransition(TransitionMarkPaid)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, SalariedYes, b.Salaried())
	})

	t.Run("idempotent re-request", func(t *testing.T) {
		b := newTestBooking(t)
		_, err := b.ApplySalariedTransition(TransitionMarkPaid)
		require.NoError(t, err)

		changed, err := b.ApplySalariedTransition(TransitionMarkPaid)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("cancelled booking freezes the paid flag", func(t *testing.T) {
		b := newTestBooking(t)
		_, err := b.ApplySalariedTransition(TransitionMarkPaid)
		require.NoError(t, err)
		_, err = b.ApplyTransition(TransitionCancel, time.Now())
		require.NoError(t, err)

		changed, err := b.ApplySalariedTransition(TransitionMarkUnpaid)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.False(t, changed)
		assert.Equal(t, SalariedYes, b.Salaried())
	})
}

func TestBookingCorrect(t *testing.T) {
	t.Run("replaces pricing before finalization", func(t *testing.T) {
		b := newTestBooking(t)

		err := b.Correct(money(t, "11.00"), money(t, "2.00"), vatRate(t, "7"))
		require.NoError(t, err)
		assert.True(t, b.UnitNet().IsEqual(money(t, "11.00")))
		assert.True(t, b.DiscountNet().IsEqual(money(t, "2.00")))
		assert.Equal(t, "7", b.VATRate().String())
	})

	t.Run("currency is immutable", func(t *testing.T) {
		b := newTestBooking(t)
		usd, err := kernel.NewMoneyFromString("11.00", "USD")
		require.NoError(t, err)

		err = b.Correct(usd, usd, vatRate(t, "21"))
		assert.ErrorIs(t, err, errs.ErrInvalidBookingData)
	})

	t.Run("finalized bookings reject correction", func(t *testing.T) {
		b := newTestBooking(t)
		_, err := b.ApplyTransition(TransitionCancel, time.Now())
		require.NoError(t, err)

		err = b.Correct(money(t, "11.00"), money(t, "0.00"), vatRate(t, "21"))
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("invalid pricing leaves the booking untouched", func(t *testing.T) {
		b := newTestBooking(t)

		err := b.Correct(money(t, "10.00"), money(t, "100.00"), vatRate(t, "7"))
		assert.ErrorIs(t, err, errs.ErrInvalidBookingData)
		assert.True(t, b.UnitNet().IsEqual(money(t, "12.50")))
		assert.Equal(t, "21", b.VATRate().String())
	})
}

func TestBookingMarkExported(t *testing.T) {
	b := newTestBooking(t)

	assert.True(t, b.MarkExported())
	assert.True(t, b.Exported())
	assert.False(t, b.MarkExported())
}

func TestBookingUpdateComment(t *testing.T) {
	b := newTestBooking(t)
	b.UpdateComment("deliver to the back door")
	assert.Equal(t, "deliver to the back door", b.Comment())
}
