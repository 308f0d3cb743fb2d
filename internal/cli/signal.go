package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalContext is cancelled on SIGINT or SIGTERM and remembers which one arrived.
// Long generations (deep batches, the HTTP server) use it to stop cleanly.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	sigCh chan os.Signal
	once  sync.Once
	mu    sync.Mutex
	sig   os.Signal
}

// NewSignalContext derives a SignalContext from parent.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}
	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go sc.watch()
	return sc
}

func (sc *SignalContext) watch() {
	defer sc.once.Do(func() { signal.Stop(sc.sigCh) })
	select {
	case s := <-sc.sigCh:
		sc.mu.Lock()
		sc.sig = s
		sc.mu.Unlock()
		sc.Cancel()
	case <-sc.Done():
	}
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// ExitCode follows the shell convention of 128+signal; 0 when no signal arrived.
func (sc *SignalContext) ExitCode() int {
	switch sc.Signal() {
	case os.Interrupt:
		return 130
	case syscall.SIGTERM:
		return 143
	default:
		return 0
	}
}
