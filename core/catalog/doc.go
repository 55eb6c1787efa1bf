// Package catalog is the persisted product catalog.
//
// The full product list is stored as a JSON array under kv.KeyProducts and
// every mutation rewrites it in full, so a Load after any mutation observes the
// complete updated list. When the key is absent (first run) or unreadable, the
// seed catalog is installed and persisted, so the catalog is never empty on
// first use.
//
// Product ids are assigned by the store: millisecond timestamps, bumped so each
// id is strictly greater than every id issued before or present in the list.
// Ids are never reassigned or mutated by Update.
//
//	store := catalog.New(storage, catalog.WithLogger(log))
//	products, err := store.Load(ctx)
//
//	p, err := store.Create(ctx, catalog.Fields{Name: "Crest Hoodie", Price: 45})
//	p, err = store.Update(ctx, p.ID, catalog.Fields{Name: "Crest Hoodie", Price: 40})
//	err = store.Delete(ctx, p.ID) // no-op for unknown ids
//
// Filter evaluates a boolean expression (expr-lang syntax) against each
// product, e.g. `price < 30 && color == "Black"`.
//
// Deleting a product does not touch carts that reference it; see cart.Retain.
package catalog
