package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"

	"github.com/mensylisir/xmupgrade/executor"
	"github.com/mensylisir/xmupgrade/report"
	"github.com/mensylisir/xmupgrade/util"
	xmtime "github.com/mensylisir/xmupgrade/time"
)

// ErrQuit is returned by ShouldRetry when the user asks to stop the whole run.
var ErrQuit = errors.New("quit requested by user")

const (
	retryPrompt   = "Retry? (y)es/(N)o/(s)hell/(q)uit "
	separatorRune = "―"
	headerWidth   = 60
)

// Terminal renders progress to out and reads answers from in.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	in       *bufio.Reader
	styles   Styles
	executor executor.Executor
	shell    string
	now      func() time.Time
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithExecutor enables the (s)hell answer, which opens an interactive shell
// through ex.
func WithExecutor(ex executor.Executor) Option {
	return func(t *Terminal) {
		t.executor = ex
	}
}

// WithShell overrides the shell started by the (s)hell answer.
func WithShell(path string) Option {
	return func(t *Terminal) {
		t.shell = path
	}
}

// WithNoColor disables all styling.
func WithNoColor(noColor bool) Option {
	return func(t *Terminal) {
		if noColor {
			r := lipgloss.NewRenderer(t.out)
			r.SetColorProfile(termenv.Ascii)
			t.styles = newStyles(r)
		}
	}
}

// New creates a Terminal. Colors follow the capabilities of out.
func New(out io.Writer, in io.Reader, opts ...Option) *Terminal {
	t := &Terminal{
		out:    out,
		in:     bufio.NewReader(in),
		styles: newStyles(lipgloss.NewRenderer(out)),
		shell:  util.FirstNonEmpty(os.Getenv("SHELL"), "sh"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PrintStep prints the header shown before a step starts.
func (t *Terminal) PrintStep(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printHeader(fmt.Sprintf("%s - %s", t.now().Format("15:04:05"), key))
}

func (t *Terminal) printHeader(title string) {
	line := fmt.Sprintf("%s %s ", separatorRune, title)
	if pad := headerWidth - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(separatorRune, pad)
	}
	fmt.Fprintf(t.out, "\n%s\n", t.styles.Header.Render(line))
}

// PrintError prints a failure of the step named key.
func (t *Terminal) PrintError(key, detail string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", t.styles.Error.Render(key+" failed:"), strings.TrimSpace(detail))
}

// ShouldRetry asks whether the failed step named key should run again. It
// keeps asking until it gets an answer it understands. Answering (q)uit
// returns ErrQuit.
func (t *Terminal) ShouldRetry(interrupted bool, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if interrupted {
		fmt.Fprintln(t.out, t.styles.Hint.Render(key+" was interrupted. Answer (q)uit to stop the remaining steps."))
	}
	for {
		fmt.Fprint(t.out, t.styles.Prompt.Render(retryPrompt))
		line, err := t.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			fmt.Fprintln(t.out)
			return false, errors.Wrap(err, "failed to read answer")
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		case "q", "quit":
			return false, ErrQuit
		case "s", "shell":
			t.openShell()
		}
	}
}

func (t *Terminal) openShell() {
	if t.executor == nil {
		fmt.Fprintln(t.out, t.styles.Hint.Render("No shell available."))
		return
	}
	fmt.Fprintln(t.out, t.styles.Hint.Render("Dropping to a shell. Exit it to return to the prompt."))
	if err := t.executor.Interactive(context.Background(), executor.Command{Name: t.shell}); err != nil {
		fmt.Fprintf(t.out, "%s %v\n", t.styles.Error.Render("shell:"), err)
	}
}

// PrintSummary prints every report entry in execution order followed by the
// totals and how long the run took.
func (t *Terminal) PrintSummary(r *report.Report, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.printHeader("Summary")
	entries := r.Data()
	width := 0
	for _, e := range entries {
		if w := lipgloss.Width(e.Key); w > width {
			width = w
		}
	}
	for _, e := range entries {
		st := t.styles.status(e.Result.Status)
		fmt.Fprintf(t.out, "%-*s %s", width+1, e.Key+":", st.Render(e.Result.Status.String()))
		if e.Result.Reason != "" {
			fmt.Fprintf(t.out, " %s", t.styles.Hint.Render("("+e.Result.Reason+")"))
		}
		fmt.Fprintln(t.out)
	}

	s := r.Summary()
	fmt.Fprintf(t.out, "\n%d succeeded, %d failed, %d ignored, %d skipped in %s\n",
		s.Succeeded, s.Failed, s.Ignored, s.Skipped, xmtime.ShortDur(elapsed))
}
