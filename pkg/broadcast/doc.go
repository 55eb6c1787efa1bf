// Package broadcast provides a synchronous, ordered publish/subscribe primitive
// for in-process state propagation.
//
// Unlike channel-based fan-out, delivery happens in the publisher's goroutine,
// one subscriber at a time, in subscription order. Outside of nested or
// concurrent publishing, when Publish returns every subscriber attached at the
// moment of the call has observed the value, so a store can treat "mutate then
// broadcast" as a single step.
//
// # Topic
//
// Topic[T] is a plain event stream:
//
//	changes := broadcast.NewTopic[Change]()
//	sub := changes.Subscribe(func(c Change) {
//		log.Println("catalog changed:", c.Kind)
//	})
//	defer sub.Close()
//
//	changes.Publish(Change{Kind: "created"})
//
// # Subject
//
// Subject[T] is a Topic that remembers its last value. New subscribers receive
// the current value immediately, then every subsequent Set:
//
//	loggedIn := broadcast.NewSubject(false)
//	sub := loggedIn.Subscribe(func(v bool) { badge.Render(v) }) // renders false now
//	loggedIn.Set(true)                                           // renders true
//	sub.Close()
//	loggedIn.Set(false)                                          // nothing delivered
//
// # Subscriptions
//
// Subscribe returns a *Subscription whose Close detaches the callback. Close is
// idempotent and safe to call from inside the callback itself. Once Close
// returns no new delivery to that callback is started.
//
// # Failure isolation
//
// A panicking subscriber does not prevent delivery to the remaining
// subscribers. The panic is recovered and reported to the hook installed with
// WithPanicHandler (by default it is dropped).
//
// # Re-entrancy
//
// Publishing from inside a subscriber callback is allowed. The nested value is
// queued and delivered once the current value has reached every subscriber, so
// each subscriber still sees values in publish order. Subscribing from inside a
// callback takes effect for the next value; for a Subject the current value
// is queued to the new subscriber ahead of any later Set.
//
// # Thread Safety
//
// All types are safe for concurrent use. While one goroutine is delivering,
// values published by other goroutines are queued and delivered by it in
// arrival order, so notification order always equals publish order.
//
// # Queue and Flush
//
// Publish is Queue followed by Flush. A store that must notify in mutation
// order without running callbacks under its own lock splits the two:
//
//	defer s.changes.Flush() // runs after the unlock below
//	s.mu.Lock()
//	defer s.mu.Unlock()
//	// mutate and persist
//	s.changes.Queue(change)
//
// A callback may then call back into the store: its own mutation queues
// behind the value being delivered.
package broadcast
