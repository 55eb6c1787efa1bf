package broadcast

// Subject is a Topic that holds a current value. Subscribers receive the
// current value on subscription and every value set afterwards.
type Subject[T any] struct {
	topic *Topic[T]
	value T // guarded by topic.mu
}

// NewSubject creates a subject holding initial.
func NewSubject[T any](initial T, opts ...Option) *Subject[T] {
	return &Subject[T]{
		value: initial,
		topic: NewTopic[T](opts...),
	}
}

// Value returns the current value.
func (s *Subject[T]) Value() T {
	s.topic.mu.Lock()
	defer s.topic.mu.Unlock()
	return s.value
}

// Set stores v and delivers it to every subscriber.
func (s *Subject[T]) Set(v T) {
	s.Queue(v)
	s.topic.Flush()
}

// Queue stores v and queues it without delivering; see Topic.Queue.
func (s *Subject[T]) Queue(v T) {
	s.topic.mu.Lock()
	defer s.topic.mu.Unlock()
	s.value = v
	s.topic.queueLocked(v, s.topic.subs)
}

// Flush delivers queued values; see Topic.Flush.
func (s *Subject[T]) Flush() {
	s.topic.Flush()
}

// Subscribe attaches fn and delivers the current value to it ahead of any
// value set later. Called from inside a callback, the current value arrives
// once the in-flight value has reached every subscriber.
func (s *Subject[T]) Subscribe(fn func(T)) *Subscription {
	t := s.topic
	t.mu.Lock()
	sub, ok := t.attachLocked(fn)
	if ok {
		t.queue = append(t.queue, delivery[T]{
			value: s.value,
			subs:  t.subs[len(t.subs)-1 : len(t.subs) : len(t.subs)],
		})
	}
	t.mu.Unlock()

	if ok {
		t.Flush()
	}
	return sub
}

// Len returns the number of active subscribers.
func (s *Subject[T]) Len() int {
	return s.topic.Len()
}

// Close detaches every subscriber. The current value remains readable.
func (s *Subject[T]) Close() {
	s.topic.Close()
}
