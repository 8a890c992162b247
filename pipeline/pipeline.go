package pipeline

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Pipeline runs an ordered list of step definitions through a Runner.
type Pipeline struct {
	name        string
	definitions []Definition
}

func New(name string, definitions []Definition) *Pipeline {
	defs := make([]Definition, len(definitions))
	copy(defs, definitions)
	return &Pipeline{name: name, definitions: defs}
}

func (p *Pipeline) Name() string {
	return p.name
}

// Definitions returns a copy of the steps in run order.
func (p *Pipeline) Definitions() []Definition {
	defs := make([]Definition, len(p.definitions))
	copy(defs, p.definitions)
	return defs
}

// Run executes every definition in order. Step failures are handled by the
// runner; Run stops only when the runner returns an error or ctx is done.
func (p *Pipeline) Run(ctx context.Context, r Runner, log *logrus.Entry) error {
	log.Debugf("Executing pipeline %s with %d steps", p.name, len(p.definitions))
	for i, def := range p.definitions {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "pipeline %s stopped before %s", p.name, def.Key)
		}
		log.WithField("index", i+1).Debugf("Executing step %s", def.Key)
		if err := r.Execute(ctx, def.Step, def.Key, def.Action); err != nil {
			return errors.Wrapf(err, "pipeline %s stopped at %s", p.name, def.Key)
		}
	}
	log.Debugf("Pipeline %s completed", p.name)
	return nil
}
