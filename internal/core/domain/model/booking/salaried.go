package booking

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Salaried is the paid state of a booking: a two-state machine between "no"
// and "yes". Both transitions are permitted at any main state except
// cancelled, where the flag is frozen at its last value.
type Salaried int

const (
	// SalariedUnknown catches uninitialized values; it is never valid.
	SalariedUnknown Salaried = iota

	// SalariedNo marks an unpaid booking. Initial state.
	SalariedNo

	// SalariedYes marks a paid booking.
	SalariedYes
)

// SalariedTransition names the operations of the salaried machine.
type SalariedTransition string

const (
	TransitionMarkPaid   SalariedTransition = "mark_paid"
	TransitionMarkUnpaid SalariedTransition = "mark_unpaid"
)

func salariedCodes() map[Salaried]string {
	return map[Salaried]string{
		SalariedNo:  "no",
		SalariedYes: "yes",
	}
}

// String returns "no" or "yes", or "unknown" for invalid values.
func (s Salaried) String() string {
	if code, ok := salariedCodes()[s]; ok {
		return code
	}
	return "unknown"
}

// ParseSalaried maps a canonical code back to a Salaried value.
func ParseSalaried(code string) (Salaried, error) {
	for s, c := range salariedCodes() {
		if c == code {
			return s, nil
		}
	}
	return SalariedUnknown, errs.NewValueIsInvalidErrorWithCause(
		"salaried", fmt.Errorf("%q is not a valid salaried state", code))
}

// Validate rejects values outside the defined set.
func (s Salaried) Validate() error {
	if _, ok := salariedCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"salaried", fmt.Errorf("%d is not a valid salaried state", s))
	}
	return nil
}

// SalariedTransitionsFrom returns the transitions legal from the given state.
func SalariedTransitionsFrom(s Salaried) []SalariedTransition {
	switch s {
	case SalariedNo:
		return []SalariedTransition{TransitionMarkPaid}
	case SalariedYes:
		return []SalariedTransition{TransitionMarkUnpaid}
	}
	return nil
}

// Apply executes a salaried transition. Requesting the already-reached state
// returns the current value unchanged with no error.
func (s Salaried) Apply(t SalariedTransition) (Salaried, error) {
	if err := s.Validate(); err != nil {
		return SalariedUnknown, err
	}

	var target Salaried
	switch t {
	case TransitionMarkPaid:
		target = SalariedYes
	case TransitionMarkUnpaid:
		target = SalariedNo
	default:
		return SalariedUnknown, errs.NewValueIsInvalidErrorWithCause(
			"transition", fmt.Errorf("%q is not a salaried transition", string(t)))
	}

	return target, nil
}
