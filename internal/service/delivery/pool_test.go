package delivery

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsTasksAndDrains(t *testing.T) {
	pool := NewPool(4, 16, nil)

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		if err := pool.Submit(func(context.Context) { ran.Add(1) }); err != nil {
			t.Fatalf("Submit err: %v", err)
		}
	}

	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown err: %v", err)
	}
	if ran.Load() != 10 {
		t.Fatalf("expected 10 tasks to run, got %d", ran.Load())
	}
}

func TestPoolRejectsWhenFull(t *testing.T) {
	pool := NewPool(1, 1, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	if err := pool.Submit(func(context.Context) {
		close(started)
		<-release
	}); err != nil {
		t.Fatalf("first Submit err: %v", err)
	}
	<-started

	if err := pool.Submit(func(context.Context) {}); err != nil {
		t.Fatalf("queued Submit err: %v", err)
	}
	if err := pool.Submit(func(context.Context) {}); !errors.Is(err, ErrPoolFull) {
		t.Fatalf("expected ErrPoolFull, got %v", err)
	}

	close(release)
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown err: %v", err)
	}
}

func TestPoolRejectsAfterShutdown(t *testing.T) {
	pool := NewPool(1, 1, nil)
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown err: %v", err)
	}

	if err := pool.Submit(func(context.Context) {}); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown err: %v", err)
	}
}

func TestPoolShutdownDeadlineCancelsTasks(t *testing.T) {
	pool := NewPool(1, 1, nil)

	started := make(chan struct{})
	cancelled := make(chan struct{})
	if err := pool.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	}); err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := pool.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	select {
	case <-cancelled:
	default:
		t.Fatal("running task should observe cancellation")
	}
}

func TestPoolSurvivesPanickingTask(t *testing.T) {
	pool := NewPool(1, 4, nil)

	var ran atomic.Bool
	_ = pool.Submit(func(context.Context) { panic("boom") })
	_ = pool.Submit(func(context.Context) { ran.Store(true) })

	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown err: %v", err)
	}
	if !ran.Load() {
		t.Fatal("worker should keep running after a panic")
	}
}
