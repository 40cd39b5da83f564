// Package services contains domain services operating across aggregates.
//
// OrderAggregator derives the read-side view of an order (totals, currency,
// aggregate main state and paid state) from the order and its bookings,
// restricted to a vendor scope. Aggregation is a pure computation: it never
// mutates entities and always recomputes from current booking state, so
// stored views can never go stale.
package services
