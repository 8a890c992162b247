package runtime

import (
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/interrupt"
	"github.com/mensylisir/xmupgrade/step"
)

// Policy is the per-step configuration consulted by the runner.
type Policy interface {
	ShouldRun(s step.Step) bool
	IgnoreFailure(s step.Step) bool
	NoRetry() bool
	Verbose() bool
	ShowSkipped() bool
}

// Presenter shows step progress and failures to the user and asks whether a
// failed step should be retried.
type Presenter interface {
	PrintStep(key string)
	PrintError(key, detail string)
	// ShouldRetry blocks on user input. An error means the question itself
	// could not be answered and aborts the run.
	ShouldRetry(interrupted bool, key string) (bool, error)
}

// Runtime defines an interface for accessing the execution context of one run.
type Runtime interface {
	RunID() string
	Policy() Policy
	Presenter() Presenter
	Interrupt() *interrupt.Flag
	Executor() executor.Executor
	Logger() *logrus.Entry
	DryRun() bool
	// AssertInvariants turns programming-error checks, such as duplicate report
	// keys, into panics.
	AssertInvariants() bool
}
