// Package session holds the storefront's authenticated flag.
//
// The flag is persisted under kv.KeyIsLoggedIn ("true" while logged in, absent
// otherwise) and broadcast to subscribers. Construct one Store per process and
// pass it to the consumers that need it (guard, login flow, HTTP handlers):
//
//	sessions, err := session.New(ctx, storage, session.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	sub := sessions.Subscribe(func(loggedIn bool) {
//		header.SetLoggedIn(loggedIn) // called now with the current value
//	})
//	defer sub.Close()
//
//	if err := sessions.Login(ctx); err != nil { ... } // subscribers see true
//
// Login and Logout persist first and notify second, holding the store lock for
// both steps, so no caller can observe the new persisted value without the
// matching notification having been delivered. Subscribers must not call Login
// or Logout synchronously from their callback.
//
// A persisted value other than "true" reads as logged out. Synchronization
// across processes sharing the same storage is not attempted; Reload re-reads
// the persisted value on demand.
package session
