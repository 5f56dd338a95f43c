// Package flow implements the fixed-capacity, single-producer/many-subscriber
// ring buffer from spec §4.5: zero-copy multicast with lock-free
// coordination via atomic sequence counters, synchronous (TryNext) and
// cooperative asynchronous (Next) entry points on both the producer and
// subscriber sides.
//
// Coordination uses go.uber.org/atomic rather than bare sync/atomic purely
// for its friendlier Load/Store/CompareAndSwap method set over the raw
// package-level functions — the underlying guarantees (64-bit atomic load/
// store/CAS, spec §4.5 "Lock-freedom") are identical.
package flow

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"
)

// ErrFull is returned by TryNext on the producer side when the slowest
// subscriber has not yet caught up enough to free a slot.
var ErrFull = errors.New("flow: full")

// ErrEmpty is returned by TryNext on the subscriber side when there is no
// value published since this subscriber's cursor.
var ErrEmpty = errors.New("flow: empty")

// Flow is a fixed-capacity ring of slots coordinating one producer and any
// number of subscribers. The zero Flow is not usable; construct one with
// New.
type Flow[T any] struct {
	slots []T
	mask  uint64

	// head is the next sequence number the producer may claim (spec
	// §4.5). It only ever advances on Publish/Discard, never on Next's
	// claim itself.
	head atomic.Uint64

	// claimed is set while a ProducerHandle is outstanding, which keeps the
	// producer side non-reentrant: at most one unpublished handle may exist
	// at a time. Only the (single) producer reads or writes it.
	claimed bool

	mu   sync.Mutex
	subs []*Subscriber[T]

	// wake is closed and replaced every time head or any subscriber
	// cursor advances, broadcasting progress to anyone parked in Next.
	// This is the "cooperative" half of spec §4.5: no particular runtime
	// or scheduler is assumed, just a channel close any goroutine can
	// select on.
	wakeMu sync.Mutex
	wake   chan struct{}
}

// New constructs a Flow with capacity rounded up to the next power of two,
// per spec §4.5.
func New[T any](capacity int) *Flow[T] {
	n := nextPowerOfTwo(capacity)

	return &Flow[T]{
		slots: make([]T, n),
		mask:  uint64(n - 1),
		wake:  make(chan struct{}),
	}
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		n = 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// Capacity returns N, the flow's fixed slot count.
func (f *Flow[T]) Capacity() int {
	return len(f.slots)
}

// Subscribe registers a new subscriber, starting from the current head:
// a subscriber only ever observes values published after it subscribes,
// never history already in flight. Safe to call while the producer is
// active.
func (f *Flow[T]) Subscribe() *Subscriber[T] {
	sub := &Subscriber[T]{flow: f}
	sub.cursor.Store(f.head.Load())

	f.mu.Lock()
	f.subs = append(f.subs, sub)
	f.mu.Unlock()

	return sub
}

// minCursor returns the slowest subscriber's cursor, or the current head
// if there are no subscribers yet (in which case the producer never
// blocks — there is nobody to apply back-pressure on its behalf).
func (f *Flow[T]) minCursor() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.subs) == 0 {
		return f.head.Load()
	}

	min := f.subs[0].cursor.Load()

	for _, s := range f.subs[1:] {
		if c := s.cursor.Load(); c < min {
			min = c
		}
	}

	return min
}

func (f *Flow[T]) waitChan() chan struct{} {
	f.wakeMu.Lock()
	defer f.wakeMu.Unlock()

	return f.wake
}

// broadcast wakes every goroutine parked in a Next call, producer or
// subscriber side alike (spec §4.5: "any call to publish or handle-drop
// makes progress visible to any subsequently polled next").
func (f *Flow[T]) broadcast() {
	f.wakeMu.Lock()
	close(f.wake)
	f.wake = make(chan struct{})
	f.wakeMu.Unlock()
}

// TryNext attempts to claim the next slot for the producer without
// blocking. It fails with ErrFull when head−min(cursors) == N (spec §4.5),
// and also while an earlier handle has not yet been published or discarded.
func (f *Flow[T]) TryNext() (*ProducerHandle[T], error) {
	if f.claimed {
		return nil, ErrFull
	}

	head := f.head.Load()

	if head-f.minCursor() >= uint64(len(f.slots)) {
		return nil, ErrFull
	}

	f.claimed = true

	return &ProducerHandle[T]{flow: f, seq: head}, nil
}

// Next claims the next slot for the producer, suspending until one is
// available or ctx is cancelled. It is cancel-safe: a cancelled Next
// leaves head and every cursor unchanged (spec §4.5).
func (f *Flow[T]) Next(ctx context.Context) (*ProducerHandle[T], error) {
	for {
		h, err := f.TryNext()
		if err == nil {
			return h, nil
		}

		wake := f.waitChan()

		select {
		case <-wake:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// ProducerHandle is an unpublished claim on one slot. Exactly one of
// Publish or Discard must be called on it, exactly once; both advance the
// flow's head by one, per spec §4.5's policy that a drop is itself a kind
// of publish (the claimed slot is considered dirty either way).
type ProducerHandle[T any] struct {
	flow *Flow[T]
	seq  uint64
	done bool
}

// Value returns a pointer to the claimed slot for the caller to populate
// in place — the zero-copy write path spec §4.5 requires.
func (h *ProducerHandle[T]) Value() *T {
	return &h.flow.slots[h.seq&h.flow.mask]
}

// Sequence returns this handle's claimed sequence number.
func (h *ProducerHandle[T]) Sequence() uint64 {
	return h.seq
}

// Publish makes the slot's current contents visible to subscribers and
// advances head by one.
func (h *ProducerHandle[T]) Publish() {
	h.release()
}

// Discard publishes the handle's slot as-is without further writes. Spec
// §9 leaves "drop without publish" an explicit policy decision; this
// implementation's policy is that Discard (and Publish) are the same
// operation — the sequence always advances, so back-pressure accounting
// never stalls on an abandoned handle.
func (h *ProducerHandle[T]) Discard() {
	h.release()
}

func (h *ProducerHandle[T]) release() {
	if h.done {
		return
	}

	h.done = true
	h.flow.claimed = false
	h.flow.head.Store(h.seq + 1)
	h.flow.broadcast()
}

// Subscriber is one consumer's read cursor into a Flow. Subscribers never
// synchronize with each other; each advances independently, bounded only
// by the flow's capacity (spec §5).
type Subscriber[T any] struct {
	flow   *Flow[T]
	cursor atomic.Uint64
}

// TryNext attempts to read the next unseen value without blocking. It
// fails with ErrEmpty iff this subscriber's cursor has caught up to head.
func (s *Subscriber[T]) TryNext() (*ConsumedHandle[T], error) {
	cursor := s.cursor.Load()

	if cursor >= s.flow.head.Load() {
		return nil, ErrEmpty
	}

	return &ConsumedHandle[T]{sub: s, seq: cursor}, nil
}

// Next reads the next unseen value, suspending until one is published or
// ctx is cancelled. Cancel-safe: a cancelled Next leaves this subscriber's
// cursor unchanged.
func (s *Subscriber[T]) Next(ctx context.Context) (*ConsumedHandle[T], error) {
	for {
		h, err := s.TryNext()
		if err == nil {
			return h, nil
		}

		wake := s.flow.waitChan()

		select {
		case <-wake:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// ConsumedHandle borrows one published slot for read-only, zero-copy
// access. Release advances this subscriber's cursor, freeing the slot once
// every subscriber has passed it. Go has no destructors, so a handle that is
// dropped without calling Release leaves the cursor where it was.
type ConsumedHandle[T any] struct {
	sub      *Subscriber[T]
	seq      uint64
	released bool
}

// Value returns a pointer to the published slot. Callers must treat it as
// read-only: the producer may reuse the underlying array slot as soon as
// every subscriber has released past it.
func (h *ConsumedHandle[T]) Value() *T {
	return &h.sub.flow.slots[h.seq&h.sub.flow.mask]
}

// Sequence returns this handle's sequence number.
func (h *ConsumedHandle[T]) Sequence() uint64 {
	return h.seq
}

// Release advances this subscriber's cursor past the handle's sequence.
func (h *ConsumedHandle[T]) Release() {
	if h.released {
		return
	}

	h.released = true
	h.sub.cursor.Store(h.seq + 1)
	h.sub.flow.broadcast()
}
