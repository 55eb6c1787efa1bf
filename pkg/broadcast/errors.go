package broadcast

import "errors"

// ErrSubscriberPanic wraps a panic recovered from a subscriber callback.
var ErrSubscriberPanic = errors.New("broadcast: subscriber panicked")
