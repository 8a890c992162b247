package step

import (
	"fmt"
	"strings"
)

// Step identifies the policy category a unit of work belongs to. Configuration
// enables, disables and ignores failures per Step, while the report shows a
// separate display key.
type Step string

const (
	System         Step = "system"
	Brew           Step = "brew"
	Flatpak        Step = "flatpak"
	Snap           Step = "snap"
	Rustup         Step = "rustup"
	Cargo          Step = "cargo"
	Npm            Step = "npm"
	Pipx           Step = "pipx"
	GoTools        Step = "go"
	CustomCommands Step = "custom_commands"
	Remotes        Step = "remotes"
)

// all holds every known step in default execution order.
var all = []Step{
	System,
	Brew,
	Flatpak,
	Snap,
	Rustup,
	Cargo,
	Npm,
	Pipx,
	GoTools,
	CustomCommands,
	Remotes,
}

// All returns a copy of every known step in default execution order.
func All() []Step {
	s := make([]Step, len(all))
	copy(s, all)
	return s
}

func (s Step) String() string {
	return string(s)
}

// Parse validates a step name coming from configuration or the command line.
func Parse(name string) (Step, error) {
	normalized := Step(strings.ToLower(strings.TrimSpace(name)))
	for _, s := range all {
		if s == normalized {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown step %q", name)
}

// ParseAll parses every name, failing on the first unknown one.
func ParseAll(names []string) ([]Step, error) {
	steps := make([]Step, 0, len(names))
	for _, name := range names {
		s, err := Parse(name)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}
