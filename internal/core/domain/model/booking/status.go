package booking

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status is the main lifecycle state of a booking. It implements a state
// machine with defined transitions:
//
//	New ──────> Processing ──> Finished
//	 │              ^
//	 └> Reserved ───┤
//	        │       │
//	        └───────┴──> Finished
//
//	{New, Processing, Reserved} ──cancel──> Cancelled (terminal)
//
// Reserved is entered at checkout time when the purchasable is oversold; the
// purchasing flow records it, this machine only moves it forward once stock
// is confirmed. The string form of a Status is its canonical code as consumed
// by presentation and export layers.
type Status int

const (
	// StatusUnknown catches uninitialized Status values; it is never valid.
	StatusUnknown Status = iota

	// StatusNew is the initial state of a booking created at checkout.
	StatusNew

	// StatusProcessing marks a booking being worked by the vendor.
	StatusProcessing

	// StatusReserved marks an oversold booking awaiting stock confirmation.
	StatusReserved

	// StatusFinished is the end of the normal forward path.
	StatusFinished

	// StatusCancelled is terminal. Cancelled bookings stay persisted and are
	// excluded from aggregation.
	StatusCancelled
)

// Transition names the operations of the main-state machine. The codes are
// part of the external vocabulary.
type Transition string

const (
	TransitionProcess Transition = "process"
	TransitionFinish  Transition = "finish"
	TransitionCancel  Transition = "cancel"
)

func statusCodes() map[Status]string {
	return map[Status]string{
		StatusNew:        "new",
		StatusProcessing: "processing",
		StatusReserved:   "reserved",
		StatusFinished:   "finished",
		StatusCancelled:  "cancelled",
	}
}

// String returns the canonical lowercase code, or "unknown" for invalid
// values.
func (s Status) String() string {
	if code, ok := statusCodes()[s]; ok {
		return code
	}
	return "unknown"
}

// ParseStatus maps a canonical code back to a Status. Used when restoring
// bookings from the store.
func ParseStatus(code string) (Status, error) {
	for s, c := range statusCodes() {
		if c == code {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid booking status", code))
}

// Validate rejects values outside the defined status set.
func (s Status) Validate() error {
	if _, ok := statusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid booking status", s))
	}
	return nil
}

// IsTerminal reports whether no transition leaves this state.
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// target returns the state a transition leads to.
func (t Transition) target() (Status, error) {
	switch t {
	case TransitionProcess:
		return StatusProcessing, nil
	case TransitionFinish:
		return StatusFinished, nil
	case TransitionCancel:
		return StatusCancelled, nil
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"transition", fmt.Errorf("%q is not a main-state transition", string(t)))
}

// transitionTable lists the legal transitions per source state.
func transitionTable() map[Status][]Transition {
	return map[Status][]Transition{
		StatusNew:        {TransitionProcess, TransitionCancel},
		StatusProcessing: {TransitionFinish, TransitionCancel},
		StatusReserved:   {TransitionProcess, TransitionFinish, TransitionCancel},
		StatusFinished:   {},
		StatusCancelled:  {},
	}
}

// TransitionsFrom returns the transitions legal from the given state, for
// allowed-transition queries by the presentation layer.
func TransitionsFrom(s Status) []Transition {
	return transitionTable()[s]
}

// Apply executes a transition. Requesting a transition whose target state is
// already reached returns the current state unchanged and no error, which
// makes re-delivered requests harmless. Any other undefined transition fails
// with IllegalTransition and no mutation.
func (s Status) Apply(t Transition) (Status, error) {
	if err := s.Validate(); err != nil {
		return StatusUnknown, err
	}

	target, err := t.target()
	if err != nil {
		return StatusUnknown, err
	}
	if s == target {
		return s, nil
	}

	for _, legal := range transitionTable()[s] {
		if legal == t {
			return target, nil
		}
	}
	return StatusUnknown, errs.NewIllegalTransitionError(string(t), s.String())
}
