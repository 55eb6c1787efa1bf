// Package async provides a generic Future for values produced off the caller's
// goroutine.
//
// Async starts fn in its own goroutine and returns immediately:
//
//	future := async.Async(ctx, upload, encoder.Encode)
//
//	// ... caller keeps working ...
//
//	ref, err := future.Await()
//
// Await blocks until completion, AwaitWithTimeout gives up after a duration
// with ErrTimeout, IsComplete and Done allow non-blocking checks. Resolved and
// Failed build already-completed futures, which is convenient for tests and
// for producers that can answer synchronously.
//
// WaitAll collects every result (first error wins). WaitAny returns the first
// future to complete. WaitAny with no futures returns ErrNoFutures.
//
// If the context is already canceled when the goroutine starts, fn is not
// called and the future resolves with ctx.Err().
package async
