package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/xmupgrade/step"
)

const sampleYAML = `
misc:
  disable: [snap]
  ignore_failures: [npm]
  no_retry: true
  show_skipped: true
  sudo_command: doas
commands:
  - name: Dotfiles
    command: "git -C {{.Home}}/dotfiles pull"
remotes:
  - name: nas
    address: 10.0.0.5
    user: admin
    key_file: ~/.ssh/id_ed25519
`

const sampleTOML = `
[misc]
only = ["custom_commands"]
verbose = true

[[commands]]
name = "Tldr"
command = "tldr --update"

[[remotes]]
address = "10.0.0.6"
user = "root"
password = "secret"
port = 2222
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_LoadYAML(t *testing.T) {
	cfg, err := NewLoader(writeFile(t, "config.yaml", sampleYAML)).Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "doas", cfg.Misc.SudoCommand)
	assert.Equal(t, "info", cfg.Misc.LogLevel)
	assert.True(t, cfg.NoRetry())
	assert.True(t, cfg.ShowSkipped())
	assert.False(t, cfg.Verbose())

	assert.False(t, cfg.ShouldRun(step.Snap))
	assert.True(t, cfg.ShouldRun(step.Brew))
	assert.True(t, cfg.IgnoreFailure(step.Npm))
	assert.False(t, cfg.IgnoreFailure(step.Cargo))

	require.Len(t, cfg.Commands, 1)
	assert.Equal(t, "Dotfiles", cfg.Commands[0].Name)

	require.Len(t, cfg.Remotes, 1)
	r := cfg.Remotes[0]
	assert.Equal(t, 22, r.Port)
	assert.Equal(t, "xmupgrade --no-retry", r.Command)
}

func TestLoader_LoadTOML(t *testing.T) {
	cfg, err := NewLoader(writeFile(t, "config.toml", sampleTOML)).Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Verbose())
	assert.True(t, cfg.ShouldRun(step.CustomCommands))
	assert.False(t, cfg.ShouldRun(step.System), "only restricts the run")

	require.Len(t, cfg.Remotes, 1)
	assert.Equal(t, "10.0.0.6", cfg.Remotes[0].Name, "name defaults to the address")
	assert.Equal(t, 2222, cfg.Remotes[0].Port)
}

func TestLoader_MissingAndEmptyFilesYieldDefaults(t *testing.T) {
	for name, path := range map[string]string{
		"missing": filepath.Join(t.TempDir(), "nonexistent.yaml"),
		"empty":   writeFile(t, "config.yaml", "  \n"),
		"no path": "",
	} {
		t.Run(name, func(t *testing.T) {
			cfg, err := NewLoader(path).Load()
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())
			assert.Equal(t, "sudo", cfg.Misc.SudoCommand)
			for _, s := range step.All() {
				assert.True(t, cfg.ShouldRun(s), "step %s runs by default", s)
			}
		})
	}
}

func TestLoader_RejectsUnknownFields(t *testing.T) {
	_, err := NewLoader(writeFile(t, "config.yaml", "misc:\n  colour: true\n")).Load()
	assert.ErrorContains(t, err, "failed to unmarshal config YAML")

	_, err = NewLoader(writeFile(t, "config.toml", "[misc]\ncolour = true\n")).Load()
	assert.ErrorContains(t, err, "failed to unmarshal config TOML")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "unknown disabled step",
			cfg:     Config{Misc: MiscSpec{Disable: []string{"windows"}}},
			wantErr: "misc.disable",
		},
		{
			name:    "unknown ignored step",
			cfg:     Config{Misc: MiscSpec{IgnoreFailures: []string{"nope"}}},
			wantErr: "misc.ignore_failures",
		},
		{
			name:    "command without body",
			cfg:     Config{Commands: []CommandSpec{{Name: "x"}}},
			wantErr: "name and command are required",
		},
		{
			name:    "duplicate command",
			cfg:     Config{Commands: []CommandSpec{{Name: "x", Command: "a"}, {Name: "x", Command: "b"}}},
			wantErr: `duplicate name "x"`,
		},
		{
			name:    "remote without auth",
			cfg:     Config{Remotes: []RemoteSpec{{Name: "h", Address: "h", User: "u"}}},
			wantErr: "one of password, key_file or use_agent",
		},
		{
			name:    "remote without user",
			cfg:     Config{Remotes: []RemoteSpec{{Address: "h", Password: "p"}}},
			wantErr: "address and user are required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Apply(t *testing.T) {
	cfg, err := NewLoader(writeFile(t, "config.yaml", sampleYAML)).Load()
	require.NoError(t, err)

	cfg.Apply(Overrides{
		DryRun:           BoolFlag{Value: true, Set: true},
		NoRetry:          BoolFlag{Value: false, Set: true},
		Verbose:          BoolFlag{Value: true, Set: false},
		AssertInvariants: BoolFlag{Value: true, Set: true},
		Only:             []string{"custom_commands", "npm"},
		Disable:          []string{"flatpak"},
		IgnoreFailures:   []string{"cargo"},
		LogLevel:         "debug",
	})
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.DryRun())
	assert.False(t, cfg.NoRetry(), "explicit flag overrides the file")
	assert.False(t, cfg.Verbose(), "unset flag keeps the file value")
	assert.True(t, cfg.AssertInvariants())
	assert.Equal(t, []string{"snap", "flatpak"}, cfg.Misc.Disable)
	assert.True(t, cfg.IgnoreFailure(step.Npm))
	assert.True(t, cfg.IgnoreFailure(step.Cargo))
	assert.True(t, cfg.ShouldRun(step.Npm))
	assert.False(t, cfg.ShouldRun(step.Brew))
	assert.Equal(t, "debug", cfg.Misc.LogLevel)
}

func TestConfig_DisableWinsOverOnly(t *testing.T) {
	cfg := &Config{Misc: MiscSpec{Only: []string{"npm"}, Disable: []string{"npm"}}}
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.ShouldRun(step.Npm))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "sudo", cfg.Misc.SudoCommand)
	assert.True(t, cfg.ShouldRun(step.System))
}
