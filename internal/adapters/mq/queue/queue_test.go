package queue

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue[string](WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if c := cap(q.jobs); c != 2 {
		t.Errorf("expected capacity 2, got %d", c)
	}

	if err := q.Enqueue(ctx, Job[string]{Index: 0, Item: "row"}); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}
	if l := q.Len(); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	j := <-q.Dequeue()
	if j.Index != 0 || j.Item != "row" {
		t.Errorf("unexpected job %+v", j)
	}
	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue[int](WithCapacity(2))
	ctx := context.Background()

	for i := range 2 {
		if err := q.Enqueue(ctx, Job[int]{Index: i, Item: i}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	// A full queue blocks until the context gives up.
	tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if err := q.Enqueue(tctx, Job[int]{Index: 2, Item: 3}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue[int](WithCapacity(4))
	ctx := context.Background()

	for i := range 3 {
		if err := q.Enqueue(ctx, Job[int]{Index: i, Item: i * 10}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
	if err := q.Enqueue(ctx, Job[int]{Index: 9}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	// Queued jobs drain in order, then the channel closes.
	var got []int
	for j := range q.Dequeue() {
		got = append(got, j.Index)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("expected [0 1 2], got %v", got)
	}
}

func TestWithCapacity_IgnoresNonPositive(t *testing.T) {
	q := NewInMemoryQueue[int](WithCapacity(0), WithCapacity(-3))
	if cap(q.jobs) != defaultCapacity {
		t.Errorf("expected default capacity %d, got %d", defaultCapacity, cap(q.jobs))
	}
}
