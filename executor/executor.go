package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/xmupgrade/cache"
	"github.com/mensylisir/xmupgrade/common"
	"github.com/mensylisir/xmupgrade/step"
	"github.com/mensylisir/xmupgrade/util"
)

// stderrTailLines is how much stderr is kept in a failure message.
const stderrTailLines = 10

// Command describes one external program invocation.
type Command struct {
	Name string
	Args []string
	// Sudo prefixes the command with the configured sudo command.
	Sudo bool
	Dir  string
	Env  []string
}

// Shell builds a command run through "sh -c".
func Shell(script string) Command {
	return Command{Name: "sh", Args: []string{"-c", script}}
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the captured output of a command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Simulated is set when the executor is in dry-run mode and nothing ran.
	Simulated bool
}

// Outcome converts the result of a successful run into a step outcome.
func (r Result) Outcome() step.Outcome {
	if r.Simulated {
		return step.Simulate()
	}
	return step.Done()
}

// Executor runs external commands on the local machine.
type Executor interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	// RunAll runs cmds in order, stopping at the first failure.
	RunAll(ctx context.Context, cmds ...Command) (Result, error)
	// LookPath resolves a binary in PATH. Results are cached per run.
	LookPath(name string) (string, error)
	// Interactive runs cmd attached to the terminal, even in dry-run mode.
	Interactive(ctx context.Context, cmd Command) error
	DryRun() bool
}

// Options configures a local executor.
type Options struct {
	DryRun      bool
	SudoCommand string
	// Stdout and Stderr receive a live copy of command output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Log    *logrus.Entry
	// LookPath replaces exec.LookPath, for tests.
	LookPath func(string) (string, error)
}

type localExecutor struct {
	opts  Options
	paths *cache.Cache[string, string]
}

// NewLocalExecutor creates an Executor for the local machine.
func NewLocalExecutor(opts Options) Executor {
	if opts.SudoCommand == "" {
		opts.SudoCommand = common.DefaultSudoCommand
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	return &localExecutor{
		opts:  opts,
		paths: cache.NewCache[string, string](cache.WithDefaultTTL[string, string](10 * time.Minute)),
	}
}

func (l *localExecutor) DryRun() bool {
	return l.opts.DryRun
}

func (l *localExecutor) resolve(cmd Command) Command {
	if !cmd.Sudo {
		return cmd
	}
	return Command{
		Name: l.opts.SudoCommand,
		Args: append([]string{cmd.Name}, cmd.Args...),
		Dir:  cmd.Dir,
		Env:  cmd.Env,
	}
}

func (l *localExecutor) Run(ctx context.Context, cmd Command) (Result, error) {
	cmd = l.resolve(cmd)
	if cmd.Name == "" {
		return Result{}, errors.New("empty command")
	}
	if l.opts.DryRun {
		l.opts.Log.Infof("Dry running: %s", cmd)
		return Result{Simulated: true}, nil
	}

	l.opts.Log.Debugf("Running: %s", cmd)
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = tee(&stdout, l.opts.Stdout)
	c.Stderr = tee(&stderr, l.opts.Stderr)
	c.Stdin = l.opts.Stdin

	err := c.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		msg := fmt.Sprintf("command '%s' failed with exit code %d", cmd, res.ExitCode)
		if tail := util.TailLines(res.Stderr, stderrTailLines); tail != "" {
			msg += ":\n" + tail
		}
		return res, errors.New(msg)
	}
	res.ExitCode = -1
	return res, errors.Wrapf(err, "failed to run command '%s'", cmd)
}

func (l *localExecutor) RunAll(ctx context.Context, cmds ...Command) (Result, error) {
	var last Result
	for _, cmd := range cmds {
		res, err := l.Run(ctx, cmd)
		if err != nil {
			return res, err
		}
		last = res
	}
	return last, nil
}

func (l *localExecutor) LookPath(name string) (string, error) {
	return l.paths.GetOrLoad(name, func() (string, error) {
		return l.opts.LookPath(name)
	})
}

func (l *localExecutor) Interactive(ctx context.Context, cmd Command) error {
	cmd = l.resolve(cmd)
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return errors.Wrapf(err, "interactive command '%s'", cmd)
	}
	return nil
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// RunInstalled runs cmds in order when binary is found in PATH. A missing
// binary declines the step instead of failing it.
func RunInstalled(ctx context.Context, ex Executor, binary string, cmds ...Command) (step.Outcome, error) {
	if _, err := ex.LookPath(binary); err != nil {
		return step.Declinef("%s is not installed", binary), nil
	}
	res, err := ex.RunAll(ctx, cmds...)
	if err != nil {
		return step.Outcome{}, err
	}
	return res.Outcome(), nil
}
