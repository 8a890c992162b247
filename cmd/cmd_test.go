package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/xmupgrade/terminal"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return buf.String(), err
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if goruntime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

const customConfig = `
commands:
  - name: Hello
    command: "echo hello from xmupgrade"
`

func TestRootHelp(t *testing.T) {
	out, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--dry-run")
	assert.Contains(t, out, "--no-retry")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "xmupgrade dev\n", out)
}

func TestSteps(t *testing.T) {
	path := writeConfig(t, customConfig)
	out, err := execute(t, "", "steps", "--config", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "system", lines[0])
	assert.Contains(t, lines, "custom_commands (Hello)")
	assert.Contains(t, lines, "remotes")
}

func TestDryRunCustomCommands(t *testing.T) {
	path := writeConfig(t, customConfig)
	out, err := execute(t, "", "--config", path, "--dry-run", "--no-retry", "--only", "custom_commands", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "Dry running: sh -c echo hello from xmupgrade")
	assert.Contains(t, out, "0 succeeded, 0 failed, 0 ignored, 0 skipped")
}

func TestRunCustomCommands(t *testing.T) {
	skipOnWindows(t)
	path := writeConfig(t, customConfig)
	out, err := execute(t, "", "--config", path, "--no-retry", "--only", "custom_commands")
	require.NoError(t, err)
	assert.Contains(t, out, "hello from xmupgrade\n")
	assert.Contains(t, out, "Hello: OK")
}

const failingConfig = `
commands:
  - name: Broken
    command: "exit 3"
`

func TestFailingStepExitsNonZero(t *testing.T) {
	skipOnWindows(t)
	path := writeConfig(t, failingConfig)
	out, err := execute(t, "", "--config", path, "--no-retry", "--only", "custom_commands")
	assert.ErrorIs(t, err, errStepsFailed)
	assert.Contains(t, out, "Broken: FAILED")
	assert.NotContains(t, out, "Retry?")
}

func TestIgnoredFailureExitsZero(t *testing.T) {
	skipOnWindows(t)
	path := writeConfig(t, failingConfig)
	out, err := execute(t, "", "--config", path, "--no-retry", "--only", "custom_commands", "--ignore-failure", "custom_commands")
	require.NoError(t, err)
	assert.Contains(t, out, "Broken: IGNORED")
}

func TestQuitFromRetryPrompt(t *testing.T) {
	skipOnWindows(t)
	path := writeConfig(t, failingConfig)
	out, err := execute(t, "q\n", "--config", path, "--only", "custom_commands")
	require.Error(t, err)
	assert.True(t, errors.Is(err, terminal.ErrQuit))
	assert.Contains(t, out, "Retry?")
	assert.Contains(t, out, "0 succeeded, 0 failed")
}

func TestInvalidStepName(t *testing.T) {
	path := writeConfig(t, "")
	_, err := execute(t, "", "--config", path, "--only", "nope", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown step "nope"`)
}

func TestCommandNamedLikeBuiltinStep(t *testing.T) {
	path := writeConfig(t, "commands:\n  - name: npm\n    command: \"true\"\n")
	_, err := execute(t, "", "--config", path, "--dry-run", "--assert-invariants")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `name "npm" is already used by the npm step`)
}
