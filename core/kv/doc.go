// Package kv defines the persisted key-value storage shared by the storefront
// stores, the server-side counterpart of a browser's local storage.
//
// Keys and values are strings. Each store owns distinct keys (see the Key
// constants) and always rewrites its whole value; there are no cross-key
// transactions, so a crash between two related writes can leave them
// inconsistent.
//
// Two backends live here: Memory for tests and ephemeral runs, and File, which
// keeps every entry in a single JSON document and survives restarts. Network
// backends (SQLite, Redis, PostgreSQL, MongoDB) live under integration/kvstore.
//
// GetJSON and SetJSON encode structured values:
//
//	products, ok, err := kv.GetJSON[[]catalog.Product](ctx, store, kv.KeyProducts)
//	if errors.Is(err, kv.ErrMalformedValue) {
//		// stored value exists but does not decode
//	}
package kv
