package flow

import (
	"context"
	"testing"
)

// TestFIFO_PerSubscriber checks spec §8 property 5: with N=8, a producer
// pushing 0..10000 and two subscribers, each subscriber reads the full
// sequence in order with no duplicates or gaps.
func TestFIFO_PerSubscriber(t *testing.T) {
	const n = 10000

	f := New[int](8)
	a := f.Subscribe()
	b := f.Subscribe()

	done := make(chan struct{})

	go func() {
		defer close(done)

		for i := 0; i < n; i++ {
			h, err := f.Next(context.Background())
			if err != nil {
				t.Error(err)
				return
			}

			*h.Value() = i
			h.Publish()
		}
	}()

	for i := 0; i < n; i++ {
		for _, sub := range []*Subscriber[int]{a, b} {
			h, err := sub.Next(context.Background())
			if err != nil {
				t.Fatal(err)
			}

			if got := *h.Value(); got != i {
				t.Fatalf("subscriber saw %d, want %d", got, i)
			}

			h.Release()
		}
	}

	<-done
}

// TestBackPressure checks spec §8 property 6: with N=2 and a paused
// subscriber, TryNext on the producer returns Full after 2 pending
// publishes; after the subscriber advances once, exactly one additional
// claim succeeds.
func TestBackPressure(t *testing.T) {
	f := New[int](2)
	sub := f.Subscribe()

	for i := 0; i < 2; i++ {
		h, err := f.TryNext()
		if err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}

		*h.Value() = i
		h.Publish()
	}

	if _, err := f.TryNext(); err != ErrFull {
		t.Fatalf("got %v, want ErrFull", err)
	}

	h, err := sub.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	h.Release()

	if _, err := f.TryNext(); err != nil {
		t.Fatalf("expected one claim to succeed after subscriber advanced: %v", err)
	}

	if _, err := f.TryNext(); err != ErrFull {
		t.Fatalf("got %v, want ErrFull", err)
	}
}

// TestMulticast_S4 reproduces spec §8 scenario S4.
func TestMulticast_S4(t *testing.T) {
	f := New[uint32](4)
	a := f.Subscribe()
	b := f.Subscribe()

	publish := func(v uint32) {
		h, err := f.TryNext()
		if err != nil {
			t.Fatal(err)
		}

		*h.Value() = v
		h.Publish()
	}

	readOne := func(sub *Subscriber[uint32]) uint32 {
		h, err := sub.TryNext()
		if err != nil {
			t.Fatal(err)
		}

		v := *h.Value()
		h.Release()

		return v
	}

	publish(1)
	publish(2)
	publish(3)

	if got := readOne(a); got != 1 {
		t.Fatalf("A got %d, want 1", got)
	}

	if got := readOne(b); got != 1 {
		t.Fatalf("B got %d, want 1", got)
	}

	if got := readOne(b); got != 2 {
		t.Fatalf("B got %d, want 2", got)
	}

	if got := readOne(b); got != 3 {
		t.Fatalf("B got %d, want 3", got)
	}

	// A fourth claim succeeds: A lags B, but head−min(cursors) is 3−1 = 2,
	// below the capacity of 4.
	h, err := f.TryNext()
	if err != nil {
		t.Fatalf("fourth claim: got %v, want success (A lags by only 2 of 4 slots)", err)
	}

	*h.Value() = 4
	h.Publish()

	if got := readOne(a); got != 2 {
		t.Fatalf("A got %d, want 2", got)
	}

	// Now slot 0 is free (both subscribers have passed sequence 0).
	if _, err := f.TryNext(); err != nil {
		t.Fatalf("expected claim to succeed once A caught up: %v", err)
	}
}

// TestNext_CancelSafe checks that a cancelled Next leaves cursors
// unchanged (spec §5 "Suspension points").
func TestNext_CancelSafe(t *testing.T) {
	f := New[int](2)
	sub := f.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sub.Next(ctx); err == nil {
		t.Fatal("expected cancellation error")
	}

	if sub.cursor.Load() != 0 {
		t.Fatalf("cursor = %d, want 0", sub.cursor.Load())
	}
}
