package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/xmupgrade/common"
)

// Log is the global logger instance, set by InitGlobalLogger.
var Log *XMLog

func init() {
	Log = &XMLog{Logger: logrus.New()}
	Log.SetFormatter(consoleFormatter(false))
	Log.SetOutput(os.Stderr)
}

// XMLog wraps *logrus.Logger with run and step scoped helpers.
type XMLog struct {
	*logrus.Logger
}

// Options controls how a logger is built.
type Options struct {
	// Dir enables file logging into Dir/<AppName>.log with daily rotation.
	// Console output is discarded when set.
	Dir     string
	Verbose bool
	Level   logrus.Level
	// Output is the console writer. Defaults to os.Stderr.
	Output io.Writer
}

var defaultFieldsOrder = []string{common.RunID, common.StepID, common.StepKey, common.Attempt, common.Host}

func consoleFormatter(verbose bool) *Formatter {
	display := ShowAboveWarn
	if verbose {
		display = ShowAll
	}
	return &Formatter{
		TimestampFormat:        "15:04:05",
		DisplayLevelName:       display,
		DisableCaller:          true,
		FieldsDisplayWithOrder: defaultFieldsOrder,
	}
}

// New builds a logger from opts.
func New(opts Options) (*XMLog, error) {
	logger := logrus.New()

	level := opts.Level
	if opts.Verbose && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if opts.Dir == "" {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		logger.SetFormatter(consoleFormatter(opts.Verbose))
		logger.SetOutput(out)
		return &XMLog{Logger: logger}, nil
	}

	if err := os.MkdirAll(opts.Dir, common.FileMode0755); err != nil {
		return nil, fmt.Errorf("failed to create log output directory %s: %w", opts.Dir, err)
	}
	logFilePath := filepath.Join(opts.Dir, common.AppName+".log")
	writer, err := rotatelogs.New(
		logFilePath+".%Y%m%d",
		rotatelogs.WithLinkName(logFilePath),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rotatelogs for %s: %w", logFilePath, err)
	}

	logger.SetReportCaller(true)
	fileFormatter := &Formatter{
		TimestampFormat:        "2006-01-02 15:04:05.000 MST",
		NoColors:               true,
		DisplayLevelName:       ShowAll,
		FieldsDisplayWithOrder: defaultFieldsOrder,
		CustomCallerFormatter: func(frame *runtime.Frame) string {
			return fmt.Sprintf("[%s:%d]", filepath.Base(frame.File), frame.Line)
		},
	}
	logger.SetFormatter(fileFormatter)

	writers := lfshook.WriterMap{}
	for _, l := range logrus.AllLevels {
		if logger.IsLevelEnabled(l) {
			writers[l] = writer
		}
	}
	logger.Hooks.Add(lfshook.NewHook(writers, fileFormatter))
	// The hook owns file output; the default writer would duplicate every line.
	logger.SetOutput(io.Discard)

	return &XMLog{Logger: logger}, nil
}

// InitGlobalLogger replaces Log with a logger built from opts.
func InitGlobalLogger(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *XMLog {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &XMLog{Logger: l}
}

// WithRun scopes the logger to one run.
func (xl *XMLog) WithRun(runID string) *logrus.Entry {
	return xl.WithField(common.RunID, runID)
}

// WithStep adds step identity and display key to entry.
func WithStep(entry *logrus.Entry, stepID fmt.Stringer, key string) *logrus.Entry {
	return entry.WithFields(logrus.Fields{
		common.StepID:  stepID.String(),
		common.StepKey: key,
	})
}

// ParseLevel parses name, falling back to info for unknown names.
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return logrus.InfoLevel, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
