package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Each typed error below unwraps to one of these so callers
// can classify failures with errors.Is without depending on concrete types.
var (
	ErrValueIsRequired        = errors.New("value is required")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrObjectNotFound         = errors.New("object not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrIllegalTransition      = errors.New("illegal transition")
	ErrInvalidBookingData     = errors.New("booking data is invalid")
	ErrCurrencyMismatch       = errors.New("currency mismatch")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// sanitize collapses newlines so error messages remain single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
	}
	return msg
}

// ValueIsRequiredError indicates a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName)), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a malformed or out-of-domain value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName)), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a value outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, sanitize(e.ParamName), e.Min, e.Max)
	return withCause(sanitize(msg), e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates an identifier that does not resolve in the store.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// UnauthorizedError indicates the caller's scope does not cover the requested
// vendor, order or booking. An empty scope always produces this error so
// "not allowed to look" is never mistaken for "nothing matched".
type UnauthorizedError struct {
	ParamName string
	Cause     error
}

func NewUnauthorizedError(paramName string) *UnauthorizedError {
	return &UnauthorizedError{ParamName: paramName}
}

func NewUnauthorizedErrorWithCause(paramName string, cause error) *UnauthorizedError {
	return &UnauthorizedError{ParamName: paramName, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUnauthorized, sanitize(e.ParamName)), e.Cause)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// IllegalTransitionError indicates a transition that is not defined from the
// entity's current state. No partial mutation accompanies this error.
type IllegalTransitionError struct {
	Transition string
	From       string
	Cause      error
}

func NewIllegalTransitionError(transition, from string) *IllegalTransitionError {
	return &IllegalTransitionError{Transition: transition, From: from}
}

func NewIllegalTransitionErrorWithCause(transition, from string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{Transition: transition, From: from, Cause: cause}
}

func (e *IllegalTransitionError) Error() string {
	return withCause(fmt.Sprintf("%s: %s from state %s",
		ErrIllegalTransition, sanitize(e.Transition), sanitize(e.From)), e.Cause)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// InvalidBookingDataError indicates malformed numeric or currency fields on a
// booking record. Aggregation aborts on this error rather than omitting the
// booking, so totals are never silently understated.
type InvalidBookingDataError struct {
	ParamName string
	Cause     error
}

func NewInvalidBookingDataError(paramName string) *InvalidBookingDataError {
	return &InvalidBookingDataError{ParamName: paramName}
}

func NewInvalidBookingDataErrorWithCause(paramName string, cause error) *InvalidBookingDataError {
	return &InvalidBookingDataError{ParamName: paramName, Cause: cause}
}

func (e *InvalidBookingDataError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInvalidBookingData, sanitize(e.ParamName)), e.Cause)
}

func (e *InvalidBookingDataError) Unwrap() error {
	return ErrInvalidBookingData
}

// CurrencyMismatchError indicates an arithmetic operation across two
// different currencies.
type CurrencyMismatchError struct {
	Left  string
	Right string
	Cause error
}

func NewCurrencyMismatchError(left, right string) *CurrencyMismatchError {
	return &CurrencyMismatchError{Left: left, Right: right}
}

func NewCurrencyMismatchErrorWithCause(left, right string, cause error) *CurrencyMismatchError {
	return &CurrencyMismatchError{Left: left, Right: right, Cause: cause}
}

func (e *CurrencyMismatchError) Error() string {
	return withCause(fmt.Sprintf("%s: %s vs %s",
		ErrCurrencyMismatch, sanitize(e.Left), sanitize(e.Right)), e.Cause)
}

func (e *CurrencyMismatchError) Unwrap() error {
	return ErrCurrencyMismatch
}

// ConcurrentModificationError indicates per-order lock contention: another
// transition was in flight for the same order.
type ConcurrentModificationError struct {
	ID    any
	Cause error
}

func NewConcurrentModificationError(id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ID: id}
}

func NewConcurrentModificationErrorWithCause(id any, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{ID: id, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	return withCause(fmt.Sprintf("%s: %v", ErrConcurrentModification, e.ID), e.Cause)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
