package step

import (
	"context"
	"fmt"
)

// Kind tags how an action that did not fail ended.
type Kind int

const (
	// Completed means the action did its work.
	Completed Kind = iota
	// Declined means a precondition was not met and the action chose not to run.
	Declined
	// Simulated means the run is a dry run and no real effect took place.
	Simulated
)

func (k Kind) String() string {
	switch k {
	case Completed:
		return "completed"
	case Declined:
		return "declined"
	case Simulated:
		return "simulated"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the non-failure result of a step action. Failures travel through
// the error return of Action instead.
type Outcome struct {
	Kind   Kind
	Reason string
}

// Action is the body of a step. A non-nil error is a failure and the Outcome is
// ignored.
type Action func(ctx context.Context) (Outcome, error)

// Done reports that the step did its work.
func Done() Outcome {
	return Outcome{Kind: Completed}
}

// Simulate reports a dry run of the step.
func Simulate() Outcome {
	return Outcome{Kind: Simulated}
}

// Decline reports that the step did not run, with a reason shown to the user.
func Decline(reason string) Outcome {
	return Outcome{Kind: Declined, Reason: reason}
}

// Declinef is Decline with a formatted reason.
func Declinef(format string, args ...interface{}) Outcome {
	return Decline(fmt.Sprintf(format, args...))
}
