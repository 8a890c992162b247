// Package executortest provides an in-memory Executor for step tests.
package executortest

import (
	"context"
	"os/exec"
	"sync"

	"github.com/pkg/errors"

	"github.com/mensylisir/xmupgrade/executor"
)

// Recorder is an Executor that records commands instead of running them.
type Recorder struct {
	mu sync.Mutex
	// Installed lists the binaries LookPath resolves.
	Installed map[string]bool
	// Fail maps a command string to the error Run returns for it.
	Fail map[string]error
	// Dry makes Run behave like a dry-run executor.
	Dry bool

	Commands []string
	// Shells lists the commands passed to Interactive.
	Shells []string
}

var _ executor.Executor = (*Recorder)(nil)

// New returns a Recorder where every binary in installed is on PATH.
func New(installed ...string) *Recorder {
	r := &Recorder{Installed: map[string]bool{}, Fail: map[string]error{}}
	for _, bin := range installed {
		r.Installed[bin] = true
	}
	return r
}

func (r *Recorder) Run(_ context.Context, cmd executor.Command) (executor.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := cmd.String()
	if cmd.Sudo {
		s = "sudo " + s
	}
	r.Commands = append(r.Commands, s)
	if err, ok := r.Fail[s]; ok {
		return executor.Result{ExitCode: 1}, err
	}
	return executor.Result{Simulated: r.Dry}, nil
}

func (r *Recorder) RunAll(ctx context.Context, cmds ...executor.Command) (executor.Result, error) {
	var last executor.Result
	for _, cmd := range cmds {
		res, err := r.Run(ctx, cmd)
		if err != nil {
			return res, err
		}
		last = res
	}
	return last, nil
}

func (r *Recorder) LookPath(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.Installed[name] {
		return "", errors.Wrapf(exec.ErrNotFound, "exec: %q", name)
	}
	return "/usr/bin/" + name, nil
}

func (r *Recorder) Interactive(_ context.Context, cmd executor.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Shells = append(r.Shells, cmd.String())
	return nil
}

func (r *Recorder) DryRun() bool {
	return r.Dry
}
