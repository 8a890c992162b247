package runtime

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/interrupt"
)

// baseRuntime implements the Runtime interface.
type baseRuntime struct {
	runID            string
	policy           Policy
	presenter        Presenter
	interrupt        *interrupt.Flag
	executor         executor.Executor
	logger           *logrus.Entry
	assertInvariants bool
}

// Config for creating a new baseRuntime.
type Config struct {
	RunID     string
	Policy    Policy
	Presenter Presenter
	// Interrupt defaults to a fresh, unset flag.
	Interrupt *interrupt.Flag
	Executor  executor.Executor
	// Logger defaults to a logger that discards everything.
	Logger           *logrus.Entry
	AssertInvariants bool
}

// NewRuntime creates a new instance of Runtime.
func NewRuntime(cfg Config) (Runtime, error) {
	if cfg.Policy == nil {
		return nil, fmt.Errorf("runtime: policy cannot be nil")
	}
	if cfg.Presenter == nil {
		return nil, fmt.Errorf("runtime: presenter cannot be nil")
	}
	if cfg.Executor == nil {
		return nil, fmt.Errorf("runtime: executor cannot be nil")
	}
	if cfg.Interrupt == nil {
		cfg.Interrupt = interrupt.New()
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = logrus.NewEntry(l)
	}

	return &baseRuntime{
		runID:            cfg.RunID,
		policy:           cfg.Policy,
		presenter:        cfg.Presenter,
		interrupt:        cfg.Interrupt,
		executor:         cfg.Executor,
		logger:           cfg.Logger,
		assertInvariants: cfg.AssertInvariants,
	}, nil
}

func (r *baseRuntime) RunID() string {
	return r.runID
}

func (r *baseRuntime) Policy() Policy {
	return r.policy
}

func (r *baseRuntime) Presenter() Presenter {
	return r.presenter
}

func (r *baseRuntime) Interrupt() *interrupt.Flag {
	return r.interrupt
}

func (r *baseRuntime) Executor() executor.Executor {
	return r.executor
}

func (r *baseRuntime) Logger() *logrus.Entry {
	return r.logger
}

func (r *baseRuntime) DryRun() bool {
	return r.executor.DryRun()
}

func (r *baseRuntime) AssertInvariants() bool {
	return r.assertInvariants
}
