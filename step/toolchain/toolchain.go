// Package toolchain updates language toolchains and the tools installed
// through them.
package toolchain

import (
	"context"

	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/step"
)

func Rustup(ex executor.Executor) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		return executor.RunInstalled(ctx, ex, "rustup",
			executor.Command{Name: "rustup", Args: []string{"update"}})
	}
}

// Cargo upgrades crates installed with "cargo install". It needs the
// cargo-update plugin.
func Cargo(ex executor.Executor) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		if _, err := ex.LookPath("cargo"); err != nil {
			return step.Decline("cargo is not installed"), nil
		}
		return executor.RunInstalled(ctx, ex, "cargo-install-update",
			executor.Command{Name: "cargo", Args: []string{"install-update", "--git", "--all"}})
	}
}

func Npm(ex executor.Executor) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		return executor.RunInstalled(ctx, ex, "npm",
			executor.Command{Name: "npm", Args: []string{"update", "--global"}})
	}
}

func Pipx(ex executor.Executor) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		return executor.RunInstalled(ctx, ex, "pipx",
			executor.Command{Name: "pipx", Args: []string{"upgrade-all"}})
	}
}

// GoTools updates binaries installed with "go install", through gup.
func GoTools(ex executor.Executor) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		return executor.RunInstalled(ctx, ex, "gup",
			executor.Command{Name: "gup", Args: []string{"update"}})
	}
}
