// Package remote runs the upgrade command on other machines over SSH.
package remote

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mensylisir/xmupgrade/common"
	"github.com/mensylisir/xmupgrade/config"
	"github.com/mensylisir/xmupgrade/connector"
	"github.com/mensylisir/xmupgrade/step"
)

// Options configures remote actions.
type Options struct {
	// Dial defaults to connector.Dial.
	Dial   connector.DialFunc
	DryRun bool
	Stdout io.Writer
	Stderr io.Writer
	Log    *logrus.Entry
}

// Key is the report key of the remote named name.
func Key(name string) string {
	return fmt.Sprintf("remote (%s)", name)
}

// ConnectorConfig maps a configured remote to SSH connection parameters.
func ConnectorConfig(spec config.RemoteSpec) connector.Config {
	cfg := connector.Config{
		User:     spec.User,
		Password: spec.Password,
		Address:  spec.Address,
		Port:     spec.Port,
		KeyFile:  spec.KeyFile,
	}
	if spec.UseAgent {
		cfg.AgentSocket = connector.AgentFromEnv
	}
	return cfg
}

// Action connects to spec and runs its command there. When spec names a
// binary that is missing on the remote, the step is declined.
func Action(spec config.RemoteSpec, opts Options) step.Action {
	dial := opts.Dial
	if dial == nil {
		dial = connector.Dial
	}
	return func(ctx context.Context) (step.Outcome, error) {
		log := opts.Log.WithField(common.Host, spec.Name)
		if opts.DryRun {
			log.Infof("Dry running: ssh %s@%s '%s'", spec.User, spec.Address, spec.Command)
			return step.Simulate(), nil
		}

		conn, err := dial(ctx, ConnectorConfig(spec))
		if err != nil {
			return step.Outcome{}, err
		}
		defer func() {
			if closeErr := conn.Close(); closeErr != nil {
				log.Warnf("Failed to close connection: %v", closeErr)
			}
		}()

		if spec.Binary != "" {
			found, err := conn.Exists(ctx, spec.Binary)
			if err != nil {
				return step.Outcome{}, err
			}
			if !found {
				return step.Declinef("%s is not installed on %s", spec.Binary, spec.Name), nil
			}
		}

		log.Debugf("Executing remote command: '%s'", spec.Command)
		if _, err := conn.Exec(ctx, spec.Command, opts.Stdout, opts.Stderr); err != nil {
			return step.Outcome{}, err
		}
		return step.Done(), nil
	}
}
