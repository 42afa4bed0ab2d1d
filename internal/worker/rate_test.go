package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type mockRefresher struct {
	callCount atomic.Int32
}

func (m *mockRefresher) Refresh(_ context.Context) {
	m.callCount.Add(1)
}

func TestRateWorkerRunsAndShutdown(t *testing.T) {
	mock := &mockRefresher{}
	w := NewRateWorker(mock, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	w.Run(ctx)

	// Should have run at least the initial refresh + some ticks
	if got := mock.callCount.Load(); got < 1 {
		t.Errorf("call count = %d, want >= 1", got)
	}
}

func TestRateWorkerStopsOnCancel(t *testing.T) {
	mock := &mockRefresher{}
	w := NewRateWorker(mock, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}
