package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCronSchedulerRejectsBadExpression(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("not a cron spec", nil)
	err := s.Start(context.Background(), func(time.Time) {})
	if err == nil {
		t.Fatal("expected error for invalid expression")
	}
}

func TestCronSchedulerNeverOverlapsCycles(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		running bool
		starts  int
		overlap bool
	)

	s := NewCronScheduler("@every 100ms", nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := s.Start(ctx, func(time.Time) {
		mu.Lock()
		if running {
			overlap = true
		}
		running = true
		starts++
		mu.Unlock()

		time.Sleep(250 * time.Millisecond)

		mu.Lock()
		running = false
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	time.Sleep(900 * time.Millisecond)
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if overlap {
		t.Fatal("a cycle started while the previous one was still running")
	}
	if starts < 2 {
		t.Fatalf("expected at least 2 cycles, got %d", starts)
	}
}

func TestCronSchedulerStopWaitsForCycle(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	started := make(chan struct{})

	s := NewCronScheduler("@every 50ms", nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := s.Start(ctx, func(time.Time) {
		select {
		case <-started:
		default:
			close(started)
		}
		time.Sleep(200 * time.Millisecond)
		select {
		case <-done:
		default:
			close(done)
		}
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	<-started

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case <-done:
	default:
		t.Fatal("Stop returned before the in-flight cycle finished")
	}
}
