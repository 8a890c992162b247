// Package custom runs the user-defined commands from the configuration.
package custom

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/xmupgrade/config"
	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/step"
	"github.com/mensylisir/xmupgrade/util"
)

// Command returns the action running spec through the shell. The command
// text is a template; {{.Home}} expands to the home directory.
func Command(ex executor.Executor, spec config.CommandSpec, home string, log *logrus.Entry) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		if home == "" && strings.Contains(spec.Command, ".Home") {
			return step.Outcome{}, errors.Errorf("cannot render command %q: home directory is unknown", spec.Name)
		}
		script, err := util.RenderString(spec.Command, util.Data{"Home": home})
		if err != nil {
			return step.Outcome{}, errors.Wrapf(err, "failed to render command %q", spec.Name)
		}
		if script == "" {
			return step.Outcome{}, errors.Errorf("command string cannot be empty for %s", spec.Name)
		}

		log.Debugf("Executing custom command %s: '%s'", spec.Name, script)
		res, err := ex.Run(ctx, executor.Shell(script))
		if err != nil {
			return step.Outcome{}, err
		}
		return res.Outcome(), nil
	}
}
