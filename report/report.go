package report

import "fmt"

// Entry is one line of the report.
type Entry struct {
	Key    string
	Result StepResult
}

// NewEntry returns an entry suitable for Push.
func NewEntry(key string, result StepResult) *Entry {
	return &Entry{Key: key, Result: result}
}

// Report is the ordered, append-only record of every step outcome of a run.
// It is owned by a single runner and is not safe for concurrent use.
type Report struct {
	entries    []Entry
	assertions bool
}

// Option configures a Report.
type Option func(*Report)

// WithAssertions turns on invariant checking. With assertions enabled, pushing
// a key twice panics; otherwise the duplicate is appended.
func WithAssertions(enabled bool) Option {
	return func(r *Report) {
		r.assertions = enabled
	}
}

// New creates an empty report.
func New(opts ...Option) *Report {
	r := &Report{entries: make([]Entry, 0)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Push appends entry. A nil entry is a no-op, used by steps that decided not to
// be reported at all.
func (r *Report) Push(entry *Entry) {
	if entry == nil {
		return
	}
	if r.assertions && r.contains(entry.Key) {
		panic(fmt.Sprintf("%s already reported", entry.Key))
	}
	r.entries = append(r.entries, *entry)
}

func (r *Report) contains(key string) bool {
	for _, e := range r.entries {
		if e.Key == key {
			return true
		}
	}
	return false
}

// Data returns the entries in insertion order. The returned slice is a copy.
func (r *Report) Data() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Report) Len() int {
	return len(r.entries)
}

// Failed reports whether any recorded step failed.
func (r *Report) Failed() bool {
	for _, e := range r.entries {
		if e.Result.Failed() {
			return true
		}
	}
	return false
}

// Summary counts entries per status.
type Summary struct {
	Succeeded int
	Failed    int
	Ignored   int
	Skipped   int
}

// Summary returns the number of entries per status.
func (r *Report) Summary() Summary {
	var s Summary
	for _, e := range r.entries {
		switch e.Result.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusFailure:
			s.Failed++
		case StatusIgnored:
			s.Ignored++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}
