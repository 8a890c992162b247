package runner

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/xmupgrade/common"
	"github.com/mensylisir/xmupgrade/hook"
	"github.com/mensylisir/xmupgrade/logger"
	"github.com/mensylisir/xmupgrade/report"
	"github.com/mensylisir/xmupgrade/runtime"
	"github.com/mensylisir/xmupgrade/step"
	xmtime "github.com/mensylisir/xmupgrade/time"
)

// Runner executes steps one after another and records their results.
type Runner struct {
	rt     runtime.Runtime
	report *report.Report
}

// New creates a Runner with an empty report.
func New(rt runtime.Runtime) *Runner {
	return &Runner{
		rt:     rt,
		report: report.New(report.WithAssertions(rt.AssertInvariants())),
	}
}

// Report returns the results recorded so far, in execution order.
func (r *Runner) Report() *report.Report {
	return r.report
}

// Execute runs action under the identity s and records the result under key.
//
// A step disabled by the policy is not run and leaves no trace. A failed
// step is offered for retry unless retries are off or its failure is
// ignored; an interruption observed during a failure always asks. Failures
// never escape Execute. The only error returned is a failure to get an
// answer from the retry prompt, in which case nothing is recorded.
func (r *Runner) Execute(ctx context.Context, s step.Step, key string, action step.Action) error {
	policy := r.rt.Policy()
	if !policy.ShouldRun(s) {
		return nil
	}

	log := logger.WithStep(r.rt.Logger(), s, key)
	presenter := r.rt.Presenter()
	presenter.PrintStep(key)

	for attempt := 1; ; attempt++ {
		attemptLog := log.WithField(common.Attempt, attempt)
		attemptLog.Debug("Running step")

		start := time.Now()
		outcome, err := invoke(ctx, action)
		attemptLog = attemptLog.WithField("elapsed", xmtime.Since(start))

		if err == nil {
			r.finish(attemptLog, key, outcome)
			return nil
		}

		attemptLog.WithError(err).Debug("Step failed")
		interrupted := r.rt.Interrupt().Take()
		ignore := policy.IgnoreFailure(s)

		retry := false
		if interrupted || !(policy.NoRetry() || ignore) {
			presenter.PrintError(key, err.Error())
			retry, err = presenter.ShouldRetry(interrupted, key)
			if err != nil {
				return errors.Wrapf(err, "failed to ask whether to retry %s", key)
			}
		}
		if retry {
			continue
		}

		if ignore {
			r.report.Push(report.NewEntry(key, report.Ignored))
		} else {
			r.report.Push(report.NewEntry(key, report.Failure))
		}
		return nil
	}
}

func (r *Runner) finish(log *logrus.Entry, key string, outcome step.Outcome) {
	switch outcome.Kind {
	case step.Completed:
		log.Debug("Step succeeded")
		r.report.Push(report.NewEntry(key, report.Success))
	case step.Simulated:
		log.Debug("Step simulated")
	case step.Declined:
		log.WithField("reason", outcome.Reason).Debug("Step skipped")
		policy := r.rt.Policy()
		if policy.Verbose() || policy.ShowSkipped() {
			r.report.Push(report.NewEntry(key, report.Skipped(outcome.Reason)))
		}
	}
}

// invoke calls action once. A panic inside action is returned as an error.
func invoke(ctx context.Context, action step.Action) (outcome step.Outcome, err error) {
	err = hook.Call(hook.Funcs{
		TryFunc: func() error {
			var tryErr error
			outcome, tryErr = action(ctx)
			return tryErr
		},
	})
	return outcome, err
}
