package broadcast

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Option configures a Topic or Subject.
type Option func(*options)

type options struct {
	onPanic func(error)
}

// WithPanicHandler installs a hook that receives panics recovered from
// subscriber callbacks, converted to errors.
func WithPanicHandler(fn func(error)) Option {
	return func(o *options) {
		o.onPanic = fn
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	closed atomic.Bool
	detach func(*Subscription)
}

// Close stops delivery to the subscriber. Safe to call multiple times.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	if s.closed.CompareAndSwap(false, true) && s.detach != nil {
		s.detach(s)
	}
}

// Active reports whether the subscription still receives values.
func (s *Subscription) Active() bool {
	return s != nil && !s.closed.Load()
}

type subscriber[T any] struct {
	sub *Subscription
	fn  func(T)
}

// delivery is a queued value and the subscribers attached when it was queued.
type delivery[T any] struct {
	value T
	subs  []subscriber[T]
}

// Topic delivers published values to subscribers synchronously, in
// subscription order.
type Topic[T any] struct {
	mu         sync.Mutex
	subs       []subscriber[T]
	queue      []delivery[T]
	delivering bool
	closed     bool
	onPanic    func(error)
}

// NewTopic creates an empty topic.
func NewTopic[T any](opts ...Option) *Topic[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &Topic[T]{onPanic: o.onPanic}
}

// Subscribe attaches fn. The returned subscription detaches it.
// Subscribing to a closed topic returns an inactive subscription.
func (t *Topic[T]) Subscribe(fn func(T)) *Subscription {
	t.mu.Lock()
	defer t.mu.Unlock()
	sub, _ := t.attachLocked(fn)
	return sub
}

func (t *Topic[T]) attachLocked(fn func(T)) (*Subscription, bool) {
	sub := &Subscription{detach: t.detach}
	if fn == nil || t.closed {
		sub.closed.Store(true)
		return sub, false
	}
	// Appending never touches the len of a slice already captured by a delivery.
	t.subs = append(t.subs, subscriber[T]{sub: sub, fn: fn})
	return sub, true
}

// Publish delivers v to every subscriber attached at the moment of the call.
// It is Queue followed by Flush.
func (t *Topic[T]) Publish(v T) {
	t.Queue(v)
	t.Flush()
}

// Queue records v for the currently attached subscribers without running
// them. A store calls Queue while holding its own lock, so values queue in
// mutation order, and Flush after releasing it, so subscribers may call back
// into the store.
func (t *Topic[T]) Queue(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queueLocked(v, t.subs)
}

func (t *Topic[T]) queueLocked(v T, subs []subscriber[T]) {
	if t.closed || len(subs) == 0 {
		return
	}
	t.queue = append(t.queue, delivery[T]{value: v, subs: subs})
}

// Flush delivers every queued value in queue order. When another call is
// already delivering, Flush returns at once and that call drains the queue.
func (t *Topic[T]) Flush() {
	t.mu.Lock()
	if t.delivering {
		t.mu.Unlock()
		return
	}
	t.delivering = true

	for len(t.queue) > 0 {
		next := t.queue[0]
		t.queue[0] = delivery[T]{}
		t.queue = t.queue[1:]
		t.mu.Unlock()

		for _, s := range next.subs {
			if s.sub.Active() {
				t.deliver(s.fn, next.value)
			}
		}

		t.mu.Lock()
	}

	t.queue = nil
	t.delivering = false
	t.mu.Unlock()
}

// Len returns the number of active subscribers.
func (t *Topic[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Close detaches every subscriber. Publish on a closed topic is a no-op.
func (t *Topic[T]) Close() {
	t.mu.Lock()
	subs := t.subs
	t.subs = nil
	t.queue = nil
	t.closed = true
	t.mu.Unlock()

	for _, s := range subs {
		s.sub.closed.Store(true)
	}
}

func (t *Topic[T]) detach(sub *Subscription) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, s := range t.subs {
		if s.sub == sub {
			// Copy instead of in-place removal: in-flight deliveries hold the old slice.
			subs := make([]subscriber[T], 0, len(t.subs)-1)
			subs = append(subs, t.subs[:i]...)
			t.subs = append(subs, t.subs[i+1:]...)
			return
		}
	}
}

func (t *Topic[T]) deliver(fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil && t.onPanic != nil {
			t.onPanic(fmt.Errorf("%w: %v", ErrSubscriberPanic, r))
		}
	}()
	fn(v)
}
