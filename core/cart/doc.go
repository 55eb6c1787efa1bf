// Package cart derives a checkout view from a set of selected products.
//
// A Cart maps product ids to entries with a quantity of at least one. It is
// transient: nothing is persisted, and it lives as long as the page context
// (in the HTTP surface, the server process) that owns it.
//
//	c := cart.New()
//	c.Toggle(hoodie)   // selected, quantity 1
//	c.Increase(hoodie) // quantity 2
//	c.Decrease(hoodie) // quantity 1
//	c.Decrease(hoodie) // still 1, never removed
//	c.Toggle(hoodie)   // removed
//	total := c.Total()
//
// Deleting a product from the catalog does not remove it from carts. Callers
// that want reconciliation opt in with Retain.
package cart
