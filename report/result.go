package report

import "fmt"

// Status is the closed set of terminal outcomes for one step.
type Status int

const (
	StatusSuccess Status = iota // Action completed without error
	StatusFailure               // Action failed and policy did not suppress it
	StatusIgnored               // Action failed but the step's failures are non-fatal
	StatusSkipped               // Action declined to run, see StepResult.Reason
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "OK"
	case StatusFailure:
		return "FAILED"
	case StatusIgnored:
		return "IGNORED"
	case StatusSkipped:
		return "SKIPPED"
	default:
		return fmt.Sprintf("UNKNOWN_STATUS_%d", int(s))
	}
}

// StepResult is the recorded outcome of one step. Reason is only set for
// StatusSkipped.
type StepResult struct {
	Status Status
	Reason string
}

var (
	Success = StepResult{Status: StatusSuccess}
	Failure = StepResult{Status: StatusFailure}
	Ignored = StepResult{Status: StatusIgnored}
)

// Skipped builds a skipped result carrying a human readable reason.
func Skipped(reason string) StepResult {
	return StepResult{Status: StatusSkipped, Reason: reason}
}

// Failed reports whether the result counts against the run's exit status.
// Only StatusFailure does; ignored and skipped steps do not.
func (r StepResult) Failed() bool {
	return r.Status == StatusFailure
}

func (r StepResult) String() string {
	if r.Status == StatusSkipped && r.Reason != "" {
		return fmt.Sprintf("%s: %s", r.Status, r.Reason)
	}
	return r.Status.String()
}
