package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalContext is a context cancelled by the first stop signal received.
// Unlike signal.NotifyContext it remembers that signal, so long running
// commands can report it and exit with the conventional status.
type SignalContext struct {
	context.Context
	Cancel func()

	mu     sync.Mutex
	sigVal os.Signal
}

// NewSignalContext returns a context cancelled on SIGINT or SIGTERM, or on
// the given signals when any are passed.
func NewSignalContext(parent context.Context, sigs ...os.Signal) *SignalContext {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			sc.stopBy(sig)
		case <-ctx.Done():
		}
	}()
	return sc
}

func (sc *SignalContext) stopBy(sig os.Signal) {
	sc.mu.Lock()
	if sc.sigVal == nil {
		sc.sigVal = sig
	}
	sc.mu.Unlock()
	sc.Cancel()
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// ExitErr returns an *ExitError when a signal cancelled the context, nil
// otherwise.
func (sc *SignalContext) ExitErr() error {
	sig := sc.Signal()
	if sig == nil {
		return nil
	}
	return &ExitError{Signal: sig, Code: exitCode(sig)}
}

// ExitError reports a command stopped by a signal.
type ExitError struct {
	Signal os.Signal
	Code   int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("stopped by signal: %v", e.Signal)
}

// exitCode follows the shell convention of 128 plus the signal number.
func exitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
