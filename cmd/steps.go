package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mensylisir/xmupgrade/pipeline"
)

func newStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List step names usable with --only, --disable and --ignore-failure",
		Args:  cobra.NoArgs,
		RunE:  runSteps,
	}
}

func runSteps(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	extra := pipeline.Describe(cfg)

	out := cmd.OutOrStdout()
	for _, s := range pipeline.DefaultRegistry().Keys() {
		if keys := extra[s]; len(keys) > 0 {
			fmt.Fprintf(out, "%s (%s)\n", s, strings.Join(keys, ", "))
			continue
		}
		fmt.Fprintln(out, s)
	}
	return nil
}
