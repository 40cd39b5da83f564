package order

import "orders/internal/core/domain/model/booking"

// MainState is the order-level state derived from the states of the order's
// active bookings. It mirrors the booking status vocabulary plus "mixed",
// which is never a booking state: it is reported when reserved bookings sit
// next to bookings in any other active state, so a partially confirmed order
// is visible as such.
type MainState string

const (
	MainStateNew        MainState = "new"
	MainStateProcessing MainState = "processing"
	MainStateReserved   MainState = "reserved"
	MainStateFinished   MainState = "finished"
	MainStateCancelled  MainState = "cancelled"
	MainStateMixed      MainState = "mixed"
)

// MainStateFromBookingStatus lifts a booking status into the order-level
// vocabulary.
func MainStateFromBookingStatus(s booking.Status) MainState {
	return MainState(s.String())
}
