package pipeline

import (
	"fmt"

	"github.com/mensylisir/xmupgrade/config"
	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/step"
	"github.com/mensylisir/xmupgrade/step/custom"
	"github.com/mensylisir/xmupgrade/step/packages"
	"github.com/mensylisir/xmupgrade/step/remote"
	"github.com/mensylisir/xmupgrade/step/toolchain"
)

// single wraps an action constructor into a factory contributing one step.
func single(s step.Step, key string, action func(executor.Executor) step.Action) Factory {
	return func(env Env) []Definition {
		return []Definition{{Step: s, Key: key, Action: action(env.Executor)}}
	}
}

func customCommands(env Env) []Definition {
	defs := make([]Definition, 0, len(env.Config.Commands))
	for _, spec := range env.Config.Commands {
		defs = append(defs, Definition{
			Step:   step.CustomCommands,
			Key:    spec.Name,
			Action: custom.Command(env.Executor, spec, env.Home, env.Log),
		})
	}
	return defs
}

func remotes(env Env) []Definition {
	defs := make([]Definition, 0, len(env.Config.Remotes))
	for _, spec := range env.Config.Remotes {
		defs = append(defs, Definition{
			Step: step.Remotes,
			Key:  remote.Key(spec.Name),
			Action: remote.Action(spec, remote.Options{
				Dial:   env.Dial,
				DryRun: env.Executor.DryRun(),
				Stdout: env.Stdout,
				Stderr: env.Stderr,
				Log:    env.Log,
			}),
		})
	}
	return defs
}

// builtins are the steps that always contribute exactly one entry.
var builtins = []struct {
	step   step.Step
	key    string
	action func(executor.Executor) step.Action
}{
	{step.System, "System update", packages.System},
	{step.Brew, "Brew", packages.Brew},
	{step.Flatpak, "Flatpak", packages.Flatpak},
	{step.Snap, "snap", packages.Snap},
	{step.Rustup, "rustup", toolchain.Rustup},
	{step.Cargo, "cargo", toolchain.Cargo},
	{step.Npm, "npm", toolchain.Npm},
	{step.Pipx, "pipx", toolchain.Pipx},
	{step.GoTools, "Go tools", toolchain.GoTools},
}

// DefaultRegistry returns a registry with every built-in step, in the order
// they run.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtins {
		if err := r.Register(b.step, single(b.step, b.key, b.action)); err != nil {
			panic(err)
		}
	}
	for _, s := range []struct {
		step    step.Step
		factory Factory
	}{
		{step.CustomCommands, customCommands},
		{step.Remotes, remotes},
	} {
		if err := r.Register(s.step, s.factory); err != nil {
			panic(err)
		}
	}
	return r
}

// BuiltinKeys returns the report keys of the fixed steps in run order.
func BuiltinKeys() []string {
	keys := make([]string, 0, len(builtins))
	for _, b := range builtins {
		keys = append(keys, b.key)
	}
	return keys
}

// CheckKeys returns an error if cfg would make two steps report under the
// same key. Custom command names share the key space with the built-in steps
// and with the remotes.
func CheckKeys(cfg *config.Config) error {
	owners := make(map[string]string)
	for _, b := range builtins {
		owners[b.key] = fmt.Sprintf("the %s step", b.step)
	}
	for _, rm := range cfg.Remotes {
		key := remote.Key(rm.Name)
		if owner, ok := owners[key]; ok {
			return fmt.Errorf("remote %q reports as %q, already used by %s", rm.Name, key, owner)
		}
		owners[key] = fmt.Sprintf("remote %q", rm.Name)
	}
	for i, c := range cfg.Commands {
		if owner, ok := owners[c.Name]; ok {
			return fmt.Errorf("commands[%d]: name %q is already used by %s", i, c.Name, owner)
		}
		owners[c.Name] = fmt.Sprintf("commands[%d]", i)
	}
	return nil
}

// Describe lists the keys a configuration adds under configurable steps.
func Describe(cfg *config.Config) map[step.Step][]string {
	out := map[step.Step][]string{}
	for _, c := range cfg.Commands {
		out[step.CustomCommands] = append(out[step.CustomCommands], c.Name)
	}
	for _, rm := range cfg.Remotes {
		out[step.Remotes] = append(out[step.Remotes], remote.Key(rm.Name))
	}
	return out
}
