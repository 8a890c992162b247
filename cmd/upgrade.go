package cmd

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mensylisir/xmupgrade/common"
	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/interrupt"
	"github.com/mensylisir/xmupgrade/logger"
	"github.com/mensylisir/xmupgrade/pipeline"
	"github.com/mensylisir/xmupgrade/runner"
	"github.com/mensylisir/xmupgrade/runtime"
	"github.com/mensylisir/xmupgrade/terminal"
	"github.com/mensylisir/xmupgrade/util"
)

func runUpgrade(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	overrides, err := gatherFlags(cmd)
	if err != nil {
		return err
	}
	cfg.Apply(overrides)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if err := pipeline.CheckKeys(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	level, levelErr := logger.ParseLevel(cfg.Misc.LogLevel)
	if err := logger.InitGlobalLogger(logger.Options{
		Dir:     cfg.Misc.LogDir,
		Verbose: cfg.Verbose(),
		Level:   level,
		Output:  cmd.ErrOrStderr(),
	}); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	if levelErr != nil {
		logger.Log.Warnf("%v, using info", levelErr)
	}

	runID := uuid.NewString()
	log := logger.Log.WithRun(runID)
	log.Debugf("Starting %s", common.AppName)

	ctx := cmd.Context()
	flag := interrupt.New()
	stop := interrupt.Notify(ctx, flag)
	defer stop()

	ex := executor.NewLocalExecutor(executor.Options{
		DryRun:      cfg.DryRun(),
		SudoCommand: cfg.Misc.SudoCommand,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		Log:         log,
	})
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}
	term := terminal.New(cmd.OutOrStdout(), cmd.InOrStdin(),
		terminal.WithExecutor(ex),
		terminal.WithNoColor(noColor),
	)

	rt, err := runtime.NewRuntime(runtime.Config{
		RunID:            runID,
		Policy:           cfg,
		Presenter:        term,
		Interrupt:        flag,
		Executor:         ex,
		Logger:           log,
		AssertInvariants: cfg.AssertInvariants(),
	})
	if err != nil {
		return err
	}

	home, err := util.Home()
	if err != nil {
		log.WithError(err).Warn("Cannot determine the home directory, custom commands using {{.Home}} will fail")
	}
	defs := pipeline.DefaultRegistry().Build(pipeline.Env{
		Config:   cfg,
		Executor: ex,
		Home:     home,
		Log:      log,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	})

	r := runner.New(rt)
	start := time.Now()
	runErr := pipeline.New("upgrade", defs).Run(ctx, r, log)
	term.PrintSummary(r.Report(), time.Since(start))

	if runErr != nil {
		return runErr
	}
	if r.Report().Failed() {
		return errStepsFailed
	}
	return nil
}
