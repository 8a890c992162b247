package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mensylisir/xmupgrade/common"
)

// errStepsFailed is returned when the run finished but at least one step
// failed. The summary already tells the user which.
var errStepsFailed = errors.New("one or more steps failed")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           common.AppName,
		Short:         "Upgrade everything on this machine in one go",
		Long:          "Runs the system package manager, language toolchains, user commands and remote hosts one after another, then prints a summary.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          runUpgrade,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("config", "", "configuration file (default ~/"+common.ConfigDirName+"/"+common.ConfigFileName+")")

	flags := cmd.Flags()
	flags.BoolP("dry-run", "n", false, "print what would run without running it")
	flags.Bool("no-retry", false, "do not ask to retry failed steps")
	flags.BoolP("verbose", "v", false, "debug logging and show skipped steps")
	flags.Bool("show-skipped", false, "include skipped steps in the summary")
	flags.Bool("assert-invariants", false, "panic on internal consistency errors")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringArray("only", nil, "run only this step (repeatable)")
	flags.StringArray("disable", nil, "never run this step (repeatable)")
	flags.StringArray("ignore-failure", nil, "record failures of this step as ignored (repeatable)")
	flags.String("log-dir", "", "also write logs to this directory")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newStepsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errStepsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
