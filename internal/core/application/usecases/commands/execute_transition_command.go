package commands

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrExecuteTransitionCommandIsNotConstructed = errors.New(
	"ExecuteTransitionCommand must be created via NewExecuteTransitionCommand constructor",
)

// transitionKind distinguishes which state machine a transition code drives.
type transitionKind int

const (
	transitionKindMain transitionKind = iota
	transitionKindSalaried
)

// ExecuteTransitionCommand requests a state transition on one booking or,
// when BookingID is nil, on every active in-scope booking of the order. The
// transition code selects the machine: main-state codes (process, finish,
// cancel) or salaried codes (mark_paid, mark_unpaid).
type ExecuteTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	bookingID  *kernel.UUID
	transition string
	kind       transitionKind
	scope      kernel.Scope

	guard guard.ConstructorGuard
}

// NewExecuteTransitionCommand creates a transition command. The transition
// code must belong to one of the two machines; the scope must be resolved.
func NewExecuteTransitionCommand(
	orderID kernel.UUID,
	bookingID *kernel.UUID,
	transition string,
	scope kernel.Scope,
) (ExecuteTransitionCommand, error) {
	cmd := ExecuteTransitionCommand{
		bookingID: bookingID,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBookingID(bookingID),
		cmd.setTransition(transition),
		cmd.setScope(scope),
	); err != nil {
		return ExecuteTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExecuteTransitionCommand) Validate() error {
	return c.guard.Validate(ErrExecuteTransitionCommandIsNotConstructed)
}

// OrderID returns the order the transition targets.
func (c ExecuteTransitionCommand) OrderID() kernel.UUID { return c.orderID }

// BookingID returns the targeted booking, or nil for an order-level
// transition.
func (c ExecuteTransitionCommand) BookingID() *kernel.UUID { return c.bookingID }

// Transition returns the transition code.
func (c ExecuteTransitionCommand) Transition() string { return c.transition }

// Scope returns the caller's vendor scope.
func (c ExecuteTransitionCommand) Scope() kernel.Scope { return c.scope }

// IsSalaried reports whether the transition drives the salaried machine.
func (c ExecuteTransitionCommand) IsSalaried() bool {
	return c.kind == transitionKindSalaried
}

func (c *ExecuteTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	c.orderID = orderID
	return nil
}

func (c *ExecuteTransitionCommand) setBookingID(bookingID *kernel.UUID) error {
	if bookingID == nil {
		return nil
	}
	if err := bookingID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("bookingID", err)
	}
	return nil
}

func (c *ExecuteTransitionCommand) setTransition(transition string) error {
	switch booking.Transition(transition) {
	case booking.TransitionProcess, booking.TransitionFinish, booking.TransitionCancel:
		c.kind = transitionKindMain
		c.transition = transition
		return nil
	}
	switch booking.SalariedTransition(transition) {
	case booking.TransitionMarkPaid, booking.TransitionMarkUnpaid:
		c.kind = transitionKindSalaried
		c.transition = transition
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("transition",
		fmt.Errorf("%q is not a known transition", transition))
}

func (c *ExecuteTransitionCommand) setScope(scope kernel.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	c.scope = scope
	return nil
}
