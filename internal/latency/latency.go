// Package latency simulates network round-trip delay on service operations.
// The original backend resolved every call after a fixed artificial delay;
// the injector reproduces that so frontends built against it keep their
// loading behavior. It carries no retry, timeout, or backpressure semantics.
package latency

import (
	"context"
	"time"
)

// Injector delays operation results by a fixed duration.
// A zero delay disables the simulation entirely.
type Injector struct {
	delay time.Duration
}

// NewInjector creates an injector with the given fixed delay.
func NewInjector(delay time.Duration) *Injector {
	return &Injector{delay: delay}
}

// Wait blocks for the configured delay or until the context is cancelled.
// Success and failure paths are delayed alike.
func (i *Injector) Wait(ctx context.Context) {
	if i == nil || i.delay <= 0 {
		return
	}

	timer := time.NewTimer(i.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
