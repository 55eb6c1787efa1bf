package kvtest

import (
	"context"
	"sync"

	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
)

// Write is one recorded mutation.
type Write struct {
	Op    string // "set" or "delete"
	Key   string
	Value string
}

// Recorder wraps a storage and records every mutation.
type Recorder struct {
	kv.Storage

	mu     sync.Mutex
	writes []Write
}

// NewRecorder wraps s.
func NewRecorder(s kv.Storage) *Recorder {
	return &Recorder{Storage: s}
}

func (r *Recorder) Set(ctx context.Context, key, value string) error {
	r.record(Write{Op: "set", Key: key, Value: value})
	return r.Storage.Set(ctx, key, value)
}

func (r *Recorder) Delete(ctx context.Context, key string) error {
	r.record(Write{Op: "delete", Key: key})
	return r.Storage.Delete(ctx, key)
}

// Writes returns the recorded mutations.
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Write, len(r.writes))
	copy(out, r.writes)
	return out
}

// WritesTo returns the number of mutations of key.
func (r *Recorder) WritesTo(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, w := range r.writes {
		if w.Key == key {
			n++
		}
	}
	return n
}

// Reset forgets recorded mutations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = nil
}

func (r *Recorder) record(w Write) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, w)
}
