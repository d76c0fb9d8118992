package main

// Notes:
// - notifyContext: only observable behavior is tested (stop, parent
//   propagation). Real signal delivery is not: an unhandled SIGHUP or SIGTERM
//   would kill the test binary when no context is listening.

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("not canceled until stopped", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		assert.NoError(t, ctx.Err())

		stop()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})

	t.Run("parent cancellation propagates", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()

		<-ctx.Done()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})
}

func TestShutdownSignals(t *testing.T) {
	t.Parallel()

	assert.Contains(t, shutdownSignals, os.Interrupt)
}
