// Package stage implements the dynamic processor group from spec §4.6: a
// Stage wraps one flow.Subscriber and multiplexes a dynamic list of
// processors over it. Adding or removing a processor is only visible to
// the next Proc/ProcMany call, never to one already in progress.
package stage

import (
	"context"
	"sync"

	"github.com/with-caer/codas/pkg/flow"
)

// Context is the mutable book-keeping handle passed to every processor
// invocation for one value. A processor that calls SkipRemaining stops the
// rest of that value's processor chain from running, without affecting
// processing of the next value.
type Context struct {
	skip bool
}

// SkipRemaining stops the remaining processors in the current chain from
// seeing this value.
func (c *Context) SkipRemaining() {
	c.skip = true
}

// Processor is invoked once per value with a fresh Context and an
// immutable reference to the value.
type Processor[T any] func(ctx *Context, value *T)

// Stage wraps one subscriber and a dynamic list of processors.
type Stage[T any] struct {
	sub *flow.Subscriber[T]

	mu         sync.Mutex
	processors []Processor[T]
}

// New wraps a subscriber in a Stage with no processors registered.
func New[T any](sub *flow.Subscriber[T]) *Stage[T] {
	return &Stage[T]{sub: sub}
}

// Add registers a processor. Visible starting with the next Proc/ProcMany
// call, never the one currently in progress.
func (s *Stage[T]) Add(p Processor[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processors = append(s.processors, p)
}

// Clear removes every registered processor, visible from the next
// Proc/ProcMany call onward.
func (s *Stage[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processors = nil
}

// snapshot freezes the processor list for the duration of one Proc/
// ProcMany call — the mechanism behind spec §4.6's "adds/removes are not
// visible until the next proc* call" rule.
func (s *Stage[T]) snapshot() []Processor[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Processor[T], len(s.processors))
	copy(out, s.processors)

	return out
}

func run[T any](procs []Processor[T], value *T) {
	ctx := &Context{}

	for _, p := range procs {
		if ctx.skip {
			return
		}

		p(ctx, value)
	}
}

// Proc takes one value off the subscriber without blocking and invokes
// every registered processor with it. If no value is available, Proc is a
// no-op and returns (false, nil) — spec §8 scenario S5.
func (s *Stage[T]) Proc() (bool, error) {
	procs := s.snapshot()

	h, err := s.sub.TryNext()
	if err == flow.ErrEmpty {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	defer h.Release()

	run(procs, h.Value())

	return true, nil
}

// ProcMany takes up to n values off the subscriber, stopping early (without
// error) once none remain.
func (s *Stage[T]) ProcMany(n int) (int, error) {
	procs := s.snapshot()

	count := 0

	for i := 0; i < n; i++ {
		h, err := s.sub.TryNext()
		if err == flow.ErrEmpty {
			break
		}

		if err != nil {
			return count, err
		}

		run(procs, h.Value())
		h.Release()
		count++
	}

	return count, nil
}

// ProcAsync suspends until a value is available (or ctx is cancelled),
// then invokes every registered processor with it — the cooperative
// counterpart to Proc, mirroring the flow layer's synchronous/async split.
func (s *Stage[T]) ProcAsync(ctx context.Context) error {
	procs := s.snapshot()

	h, err := s.sub.Next(ctx)
	if err != nil {
		return err
	}

	defer h.Release()

	run(procs, h.Value())

	return nil
}
