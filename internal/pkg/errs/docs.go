// Package errs provides the standardized error taxonomy of the orders core.
//
// Two groups of errors live here:
//
//   - Generic value errors raised while constructing domain objects:
//     ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError and
//     ObjectNotFoundError.
//   - Domain errors raised by aggregation and transitions: UnauthorizedError,
//     IllegalTransitionError, InvalidBookingDataError, CurrencyMismatchError
//     and ConcurrentModificationError.
//
// Each error type follows the same pattern: a package sentinel (e.g.
// ErrIllegalTransition), a struct carrying details plus an optional Cause,
// constructors with and without cause, an Error() rendering with a
// "(cause: ...)" suffix, and Unwrap() returning the sentinel so errors.Is
// classification works across layers. Errors are always returned to the
// caller as typed results; nothing in the core swallows them.
package errs
