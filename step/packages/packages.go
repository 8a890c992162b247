// Package packages updates operating system and desktop package managers.
package packages

import (
	"context"
	goruntime "runtime"

	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/step"
)

// manager is one supported system package manager.
type manager struct {
	binary string
	cmds   []executor.Command
}

var linuxManagers = []manager{
	{binary: "apt-get", cmds: []executor.Command{
		{Name: "apt-get", Args: []string{"update"}, Sudo: true},
		{Name: "apt-get", Args: []string{"-y", "dist-upgrade"}, Sudo: true},
	}},
	{binary: "dnf", cmds: []executor.Command{
		{Name: "dnf", Args: []string{"-y", "upgrade"}, Sudo: true},
	}},
	{binary: "pacman", cmds: []executor.Command{
		{Name: "pacman", Args: []string{"-Syu", "--noconfirm"}, Sudo: true},
	}},
	{binary: "zypper", cmds: []executor.Command{
		{Name: "zypper", Args: []string{"--non-interactive", "refresh"}, Sudo: true},
		{Name: "zypper", Args: []string{"--non-interactive", "update"}, Sudo: true},
	}},
}

// System updates the package manager of the running operating system.
func System(ex executor.Executor) step.Action {
	return system(ex, goruntime.GOOS)
}

func system(ex executor.Executor, goos string) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		switch goos {
		case "linux":
			for _, m := range linuxManagers {
				if _, err := ex.LookPath(m.binary); err == nil {
					return executor.RunInstalled(ctx, ex, m.binary, m.cmds...)
				}
			}
			return step.Decline("no supported package manager found"), nil
		case "darwin":
			return executor.RunInstalled(ctx, ex, "softwareupdate",
				executor.Command{Name: "softwareupdate", Args: []string{"--install", "--all"}, Sudo: true})
		default:
			return step.Declinef("system updates are not supported on %s", goos), nil
		}
	}
}

// Brew updates Homebrew and upgrades installed formulae and casks.
func Brew(ex executor.Executor) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		return executor.RunInstalled(ctx, ex, "brew",
			executor.Command{Name: "brew", Args: []string{"update"}},
			executor.Command{Name: "brew", Args: []string{"upgrade"}},
		)
	}
}

// Flatpak updates installed flatpak applications and runtimes.
func Flatpak(ex executor.Executor) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		return executor.RunInstalled(ctx, ex, "flatpak",
			executor.Command{Name: "flatpak", Args: []string{"update", "-y"}})
	}
}

// Snap refreshes installed snaps.
func Snap(ex executor.Executor) step.Action {
	return func(ctx context.Context) (step.Outcome, error) {
		return executor.RunInstalled(ctx, ex, "snap",
			executor.Command{Name: "snap", Args: []string{"refresh"}, Sudo: true})
	}
}
