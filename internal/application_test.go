package application

import (
	"context"
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchSignals(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Stop releases the watcher without a signal", func(t *testing.T) {
		// Given: a watcher on a live context
		ctx, cancel := context.WithCancel(context.Background())
		stop := watchSignals(ctx, cancel, log)

		// When: the app leaves on its own
		stopped := make(chan struct{})
		go func() {
			stop()
			close(stopped)
		}()

		// Then: stop returns and the context is done
		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
		require.Error(t, ctx.Err())
	})

	t.Run("SIGTERM cancels the context", func(t *testing.T) {
		// Given: a watcher on a live context
		ctx, cancel := context.WithCancel(context.Background())
		stop := watchSignals(ctx, cancel, log)
		t.Cleanup(stop)

		// When: the process receives SIGTERM
		require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

		// Then
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("context was not canceled")
		}
	})
}
