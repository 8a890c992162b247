package pipeline

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mensylisir/xmupgrade/config"
	"github.com/mensylisir/xmupgrade/connector"
	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/step"
)

// Definition is one step ready to be handed to a Runner.
type Definition struct {
	Step   step.Step
	Key    string
	Action step.Action
}

// Env is what a Factory needs to build its definitions.
type Env struct {
	Config   *config.Config
	Executor executor.Executor
	Home     string
	Log      *logrus.Entry
	Stdout   io.Writer
	Stderr   io.Writer
	// Dial opens SSH connections for the remotes step. Nil uses connector.Dial.
	Dial connector.DialFunc
}

// Factory builds the definitions contributed by one step identity. A step
// driven by configuration, such as custom commands, may contribute several
// definitions or none.
type Factory func(env Env) []Definition

// Runner executes a single step.
type Runner interface {
	Execute(ctx context.Context, s step.Step, key string, action step.Action) error
}
