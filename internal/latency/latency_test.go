package latency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWait_ZeroDelayReturnsImmediately(t *testing.T) {
	injector := NewInjector(0)

	start := time.Now()
	injector.Wait(context.Background())

	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestWait_BlocksForConfiguredDelay(t *testing.T) {
	injector := NewInjector(30 * time.Millisecond)

	start := time.Now()
	injector.Wait(context.Background())

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWait_StopsOnContextCancel(t *testing.T) {
	injector := NewInjector(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	injector.Wait(ctx)

	assert.Less(t, time.Since(start), time.Second)
}

func TestWait_NilInjectorIsSafe(t *testing.T) {
	var injector *Injector

	assert.NotPanics(t, func() {
		injector.Wait(context.Background())
	})
}
