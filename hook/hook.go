package hook

import (
	"fmt"
	"runtime/debug"
)

// Interface is a try/catch/finally triple. Catch receives the error from Try
// and returns the error Call should report. Finally always runs last.
type Interface interface {
	Try() error
	Catch(err error) error
	Finally()
}

// PanicError is returned by Call when Try panics.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic occurred during hook execution: %v", p.Value)
}

// Call runs hook. A panic inside Try is recovered, passed through Catch as a
// *PanicError, and returned like any other error.
func Call(hook Interface) (err error) {
	if hook == nil {
		return fmt.Errorf("hook cannot be nil")
	}

	defer hook.Finally()

	defer func() {
		if r := recover(); r != nil {
			err = hook.Catch(&PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	if tryErr := hook.Try(); tryErr != nil {
		return hook.Catch(tryErr)
	}
	return nil
}

// Funcs adapts plain functions to Interface. Nil Catch returns the error
// unchanged; nil Finally does nothing.
type Funcs struct {
	TryFunc     func() error
	CatchFunc   func(error) error
	FinallyFunc func()
}

func (f Funcs) Try() error {
	return f.TryFunc()
}

func (f Funcs) Catch(err error) error {
	if f.CatchFunc == nil {
		return err
	}
	return f.CatchFunc(err)
}

func (f Funcs) Finally() {
	if f.FinallyFunc != nil {
		f.FinallyFunc()
	}
}
