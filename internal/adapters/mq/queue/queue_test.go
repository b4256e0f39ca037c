package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/rankdrift/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if err := q.Put(ctx, model.TrialJob{RunID: "run", Index: 0, Seed: 1}); err != nil {
		t.Errorf("expected put to succeed, got %v", err)
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	job := <-q.Dequeue(ctx)
	if job.Index != 0 || job.Seed != 1 {
		t.Errorf("unexpected job %+v", job)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := q.Put(ctx, model.TrialJob{Index: i}); err != nil {
			t.Errorf("expected put %d to succeed, got %v", i, err)
		}
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}

	// A full queue makes Put wait until the context gives up.
	tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := q.Put(tctx, model.TrialJob{Index: 2}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestInMemoryQueue_PutDeliversInOrder(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()
	const jobs = 50

	go func() {
		for i := 0; i < jobs; i++ {
			if err := q.Put(ctx, model.TrialJob{Index: i}); err != nil {
				t.Errorf("put %d: %v", i, err)
				return
			}
		}
		_ = q.Close()
	}()

	next := 0
	for job := range q.Dequeue(ctx) {
		if job.Index != next {
			t.Fatalf("expected job %d, got %d", next, job.Index)
		}
		next++
	}
	if next != jobs {
		t.Errorf("expected %d jobs, got %d", jobs, next)
	}
}

func TestInMemoryQueue_ConcurrentConsumers(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(8))
	ctx := context.Background()
	const jobs = 200

	var (
		mu   sync.Mutex
		seen = make(map[int]int)
		wg   sync.WaitGroup
	)
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range q.Dequeue(ctx) {
				mu.Lock()
				seen[job.Index]++
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < jobs; i++ {
		if err := q.Put(ctx, model.TrialJob{Index: i}); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}
	_ = q.Close()
	wg.Wait()

	if len(seen) != jobs {
		t.Fatalf("expected %d distinct jobs, got %d", jobs, len(seen))
	}
	for idx, n := range seen {
		if n != 1 {
			t.Errorf("job %d delivered %d times", idx, n)
		}
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if err := q.Put(ctx, model.TrialJob{Index: 0}); err != nil {
		t.Errorf("expected put to succeed, got %v", err)
	}
	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}

	if err := q.Put(ctx, model.TrialJob{Index: 1}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	// Jobs queued before Close are still delivered, then the channel closes.
	ch := q.Dequeue(ctx)
	timeout := time.After(100 * time.Millisecond)
	delivered := 0
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				if delivered != 1 {
					t.Errorf("expected 1 drained job, got %d", delivered)
				}
				if err := q.Close(); err != nil {
					t.Errorf("expected second close to succeed, got error: %v", err)
				}
				return
			}
			delivered++
		case <-timeout:
			t.Fatal("expected dequeue channel to be closed within timeout")
		}
	}
}
