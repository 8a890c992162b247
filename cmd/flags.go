package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mensylisir/xmupgrade/common"
	"github.com/mensylisir/xmupgrade/config"
	"github.com/mensylisir/xmupgrade/util"
)

func gatherFlags(cmd *cobra.Command) (config.Overrides, error) {
	flags := cmd.Flags()
	var values config.Overrides

	bools := []struct {
		name string
		dst  *config.BoolFlag
	}{
		{"dry-run", &values.DryRun},
		{"no-retry", &values.NoRetry},
		{"verbose", &values.Verbose},
		{"show-skipped", &values.ShowSkipped},
		{"assert-invariants", &values.AssertInvariants},
	}
	for _, b := range bools {
		if !flags.Changed(b.name) {
			continue
		}
		v, err := flags.GetBool(b.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", b.name, err)
		}
		*b.dst = config.BoolFlag{Value: v, Set: true}
	}

	lists := []struct {
		name string
		dst  *[]string
	}{
		{"only", &values.Only},
		{"disable", &values.Disable},
		{"ignore-failure", &values.IgnoreFailures},
	}
	for _, l := range lists {
		if !flags.Changed(l.name) {
			continue
		}
		v, err := flags.GetStringArray(l.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", l.name, err)
		}
		*l.dst = append([]string{}, v...)
	}

	var err error
	if values.LogDir, err = flags.GetString("log-dir"); err != nil {
		return values, fmt.Errorf("parse --log-dir: %w", err)
	}
	if values.LogLevel, err = flags.GetString("log-level"); err != nil {
		return values, fmt.Errorf("parse --log-level: %w", err)
	}
	return values, nil
}

// loadConfig reads the configuration file named by --config, or the default
// one in the home directory.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("parse --config: %w", err)
	}
	if path == "" {
		home, err := util.Home()
		if err != nil {
			return nil, fmt.Errorf("determine home directory: %w", err)
		}
		path = common.DefaultConfigPath(home)
	}
	return config.NewLoader(path).Load()
}
