package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/xmupgrade/common"
)

type stepName string

func (s stepName) String() string { return string(s) }

func TestNew_ConsoleOrdersStepFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Output: &buf, Level: logrus.InfoLevel})
	require.NoError(t, err)

	entry := WithStep(l.WithRun("run-1"), stepName("brew"), "Brew")
	entry.WithField("extra", 1).Info("upgrading")

	line := buf.String()
	assert.Contains(t, line, "[Run:run-1 | Step:brew | Key:Brew | extra:1] upgrading")
	assert.NotContains(t, line, "[INFO]", "info level name is hidden unless verbose")
}

func TestNew_VerboseRaisesLevelAndShowsNames(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Output: &buf, Verbose: true, Level: logrus.InfoLevel})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.Debug("probe")
	assert.Contains(t, buf.String(), "[DEBU]")
	assert.Contains(t, buf.String(), "probe")
}

func TestNew_VerboseKeepsTrace(t *testing.T) {
	l, err := New(Options{Output: &bytes.Buffer{}, Verbose: true, Level: logrus.TraceLevel})
	require.NoError(t, err)
	assert.Equal(t, logrus.TraceLevel, l.GetLevel())
}

func TestNew_FileOutput(t *testing.T) {
	dir := t.TempDir()
	l, err := New(Options{Dir: dir, Level: logrus.InfoLevel})
	require.NoError(t, err)

	l.WithRun("run-2").Info("written to file")

	link := filepath.Join(dir, common.AppName+".log")
	require.Eventually(t, func() bool {
		content, err := os.ReadFile(link)
		return err == nil && strings.Contains(string(content), "written to file")
	}, 2*time.Second, 20*time.Millisecond)

	content, err := os.ReadFile(link)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "Run:run-2")
	assert.NotContains(t, string(content), "\x1b[", "file output must not contain colors")
}

func TestInitGlobalLogger(t *testing.T) {
	original := Log
	defer func() { Log = original }()

	var buf bytes.Buffer
	require.NoError(t, InitGlobalLogger(Options{Output: &buf, Level: logrus.WarnLevel}))
	Log.Info("hidden")
	Log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, level)

	level, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	level, err = ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, logrus.InfoLevel, level)
}

func TestFormatter_LevelDisplayModes(t *testing.T) {
	tests := []struct {
		mode  LevelNameDisplayMode
		level logrus.Level
		want  bool
	}{
		{ShowAll, logrus.InfoLevel, true},
		{ShowAboveWarn, logrus.InfoLevel, false},
		{ShowAboveWarn, logrus.WarnLevel, true},
		{ShowAboveError, logrus.WarnLevel, false},
		{ShowAboveError, logrus.ErrorLevel, true},
		{HideAll, logrus.PanicLevel, false},
	}
	for _, tt := range tests {
		f := &Formatter{DisplayLevelName: tt.mode}
		assert.Equal(t, tt.want, f.showLevel(tt.level), "mode %d level %s", tt.mode, tt.level)
	}
}

func TestFormatter_TruncatesAndSortsFields(t *testing.T) {
	f := &Formatter{DisableTimestamp: true, NoColors: true, MaxFieldValueLength: 3, DisplayLevelName: HideAll}
	entry := logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{"b": "abcdef", "a": 1})
	entry.Message = "msg"

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[a:1 | b:abc...] msg\n", string(out))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.NotPanics(t, func() { l.Error("nothing") })
}
