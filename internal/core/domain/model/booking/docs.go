// Package booking contains the Booking entity, one purchased line item of an
// order, together with its two state machines: the main lifecycle state
// (new, processing, reserved, finished, cancelled) and the salaried state
// (no, yes).
//
// Bookings are created at checkout and never physically deleted; cancellation
// is a terminal state, not removal. All state changes go through the
// transition methods, which validate legality against the transition tables
// and are idempotent when the requested target state is already reached.
// Per-line derived figures (line net, line VAT, discount) are pure functions
// over a single booking.
package booking
