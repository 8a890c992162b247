// Package interrupt carries the user's Ctrl-C from the signal handler to the
// step runner.
//
// A Flag is owned by the run and passed explicitly to whoever needs it, so
// tests can construct independent instances.
package interrupt

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Flag is a run-wide boolean set asynchronously when the user interrupts.
// The zero value is ready to use and unset.
type Flag struct {
	set atomic.Bool
}

// New returns an unset flag.
func New() *Flag {
	return &Flag{}
}

// Set records an interruption.
func (f *Flag) Set() {
	f.set.Store(true)
}

// Unset clears the flag.
func (f *Flag) Unset() {
	f.set.Store(false)
}

// Interrupted reports whether the flag is set without clearing it.
func (f *Flag) Interrupted() bool {
	return f.set.Load()
}

// Take returns whether the flag was set and clears it in the same operation.
func (f *Flag) Take() bool {
	return f.set.Swap(false)
}

// Notify routes SIGINT and SIGTERM into flag instead of terminating the
// process. The returned function stops delivery; it is also called when ctx is
// done.
func Notify(ctx context.Context, flag *Flag) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				flag.Set()
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	var stopped atomic.Bool
	return func() {
		if stopped.Swap(true) {
			return
		}
		signal.Stop(ch)
		close(done)
	}
}
