// Package order contains the Order aggregate root: order-level data shared by
// all bookings of one checkout (ordernumber, creator, shipping and cart
// discount amounts, payment and shipping labels, opaque checkout attributes).
//
// The aggregate keeps the insertion-ordered list of its booking identities;
// the bookings themselves are separate entities loaded and saved through
// their own repository. Orders are never deleted.
package order
