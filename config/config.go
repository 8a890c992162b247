package config

import (
	"fmt"
	"slices"

	"github.com/mensylisir/xmupgrade/common"
	"github.com/mensylisir/xmupgrade/step"
)

// Config is the top-level configuration structure.
type Config struct {
	Misc     MiscSpec      `yaml:"misc" toml:"misc"`
	Commands []CommandSpec `yaml:"commands,omitempty" toml:"commands,omitempty"`
	Remotes  []RemoteSpec  `yaml:"remotes,omitempty" toml:"remotes,omitempty"`

	// resolved step lists, filled by Validate
	disabled       []step.Step
	only           []step.Step
	ignoreFailures []step.Step
}

// MiscSpec holds run-wide switches.
type MiscSpec struct {
	Disable          []string `yaml:"disable,omitempty" toml:"disable,omitempty"`
	Only             []string `yaml:"only,omitempty" toml:"only,omitempty"`
	IgnoreFailures   []string `yaml:"ignore_failures,omitempty" toml:"ignore_failures,omitempty"`
	NoRetry          bool     `yaml:"no_retry" toml:"no_retry"`
	Verbose          bool     `yaml:"verbose" toml:"verbose"`
	ShowSkipped      bool     `yaml:"show_skipped" toml:"show_skipped"`
	DryRun           bool     `yaml:"dry_run" toml:"dry_run"`
	AssertInvariants bool     `yaml:"assert_invariants" toml:"assert_invariants"`
	SudoCommand      string   `yaml:"sudo_command,omitempty" toml:"sudo_command,omitempty"`
	LogDir           string   `yaml:"log_dir,omitempty" toml:"log_dir,omitempty"`
	LogLevel         string   `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
}

// CommandSpec is a user-defined command run by the custom_commands step.
type CommandSpec struct {
	Name    string `yaml:"name" toml:"name"`
	Command string `yaml:"command" toml:"command"`
}

// RemoteSpec is a host upgraded over SSH by the remotes step.
type RemoteSpec struct {
	Name     string `yaml:"name" toml:"name"`
	Address  string `yaml:"address" toml:"address"`
	Port     int    `yaml:"port,omitempty" toml:"port,omitempty"`
	User     string `yaml:"user" toml:"user"`
	Password string `yaml:"password,omitempty" toml:"password,omitempty"`
	KeyFile  string `yaml:"key_file,omitempty" toml:"key_file,omitempty"`
	// UseAgent authenticates through $SSH_AUTH_SOCK.
	UseAgent bool `yaml:"use_agent,omitempty" toml:"use_agent,omitempty"`
	// Command runs on the remote. Defaults to "xmupgrade --no-retry".
	Command string `yaml:"command,omitempty" toml:"command,omitempty"`
	// Binary is checked over SFTP before running Command. Empty skips the check.
	Binary string `yaml:"binary,omitempty" toml:"binary,omitempty"`
}

// Default returns a configuration with defaults applied and validated.
func Default() *Config {
	cfg := &Config{}
	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// SetDefaults fills unset fields.
func SetDefaults(cfg *Config) {
	if cfg.Misc.SudoCommand == "" {
		cfg.Misc.SudoCommand = common.DefaultSudoCommand
	}
	if cfg.Misc.LogLevel == "" {
		cfg.Misc.LogLevel = common.DefaultLogLevel
	}
	for i := range cfg.Remotes {
		r := &cfg.Remotes[i]
		if r.Port == 0 {
			r.Port = common.DefaultSSHPort
		}
		if r.Name == "" {
			r.Name = r.Address
		}
		if r.Command == "" {
			r.Command = common.AppName + " --no-retry"
		}
	}
}

// Validate checks step names and required fields and resolves step lists.
func (c *Config) Validate() error {
	var err error
	if c.disabled, err = step.ParseAll(c.Misc.Disable); err != nil {
		return fmt.Errorf("misc.disable: %w", err)
	}
	if c.only, err = step.ParseAll(c.Misc.Only); err != nil {
		return fmt.Errorf("misc.only: %w", err)
	}
	if c.ignoreFailures, err = step.ParseAll(c.Misc.IgnoreFailures); err != nil {
		return fmt.Errorf("misc.ignore_failures: %w", err)
	}

	names := make(map[string]bool, len(c.Commands))
	for i, cmd := range c.Commands {
		if cmd.Name == "" || cmd.Command == "" {
			return fmt.Errorf("commands[%d]: name and command are required", i)
		}
		if names[cmd.Name] {
			return fmt.Errorf("commands[%d]: duplicate name %q", i, cmd.Name)
		}
		names[cmd.Name] = true
	}

	hosts := make(map[string]bool, len(c.Remotes))
	for i, r := range c.Remotes {
		if r.Address == "" || r.User == "" {
			return fmt.Errorf("remotes[%d]: address and user are required", i)
		}
		if r.Password == "" && r.KeyFile == "" && !r.UseAgent {
			return fmt.Errorf("remotes[%d] (%s): one of password, key_file or use_agent is required", i, r.Name)
		}
		if hosts[r.Name] {
			return fmt.Errorf("remotes[%d]: duplicate name %q", i, r.Name)
		}
		hosts[r.Name] = true
	}
	return nil
}

// ShouldRun reports whether s is enabled for this run.
func (c *Config) ShouldRun(s step.Step) bool {
	if slices.Contains(c.disabled, s) {
		return false
	}
	return len(c.only) == 0 || slices.Contains(c.only, s)
}

// IgnoreFailure reports whether failures of s are recorded as ignored.
func (c *Config) IgnoreFailure(s step.Step) bool {
	return slices.Contains(c.ignoreFailures, s)
}

func (c *Config) NoRetry() bool          { return c.Misc.NoRetry }
func (c *Config) Verbose() bool          { return c.Misc.Verbose }
func (c *Config) ShowSkipped() bool      { return c.Misc.ShowSkipped }
func (c *Config) DryRun() bool           { return c.Misc.DryRun }
func (c *Config) AssertInvariants() bool { return c.Misc.AssertInvariants }
