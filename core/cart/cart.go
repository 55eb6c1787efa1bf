package cart

import (
	"cmp"
	"slices"
	"sync"

	"github.com/Chrissankov/gymshark-ecommerce/core/catalog"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/broadcast"
)

// Entry is one checkout line.
type Entry struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price times quantity.
func (e Entry) Subtotal() float64 {
	return e.Product.Price * float64(e.Quantity)
}

// Summary is the derived checkout view.
type Summary struct {
	Items []Entry `json:"items"`
	Total float64 `json:"total"`
}

// Cart is safe for concurrent use.
type Cart struct {
	mu      sync.Mutex
	entries map[int64]Entry
	changes *broadcast.Topic[Summary]
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{
		entries: make(map[int64]Entry),
		changes: broadcast.NewTopic[Summary](),
	}
}

// Toggle selects p with quantity 1, or removes it if already selected.
// It reports whether p is selected afterwards.
func (c *Cart) Toggle(p catalog.Product) bool {
	c.mu.Lock()
	_, selected := c.entries[p.ID]
	if selected {
		delete(c.entries, p.ID)
	} else {
		c.entries[p.ID] = Entry{Product: p, Quantity: 1}
	}
	c.publishLocked()
	return !selected
}

// Increase adds one to the quantity of p. No-op if p is not selected.
func (c *Cart) Increase(p catalog.Product) {
	c.adjust(p.ID, 1)
}

// Decrease subtracts one from the quantity of p, never going below one.
// No-op if p is not selected.
func (c *Cart) Decrease(p catalog.Product) {
	c.adjust(p.ID, -1)
}

func (c *Cart) adjust(id int64, delta int) {
	c.mu.Lock()
	e, ok := c.entries[id]
	if !ok || e.Quantity+delta < 1 {
		c.mu.Unlock()
		return
	}
	e.Quantity += delta
	c.entries[id] = e
	c.publishLocked()
}

// IsSelected reports whether p is in the cart.
func (c *Cart) IsSelected(p catalog.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[p.ID]
	return ok
}

// Quantity returns the quantity of p, or zero when not selected.
func (c *Cart) Quantity(p catalog.Product) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[p.ID].Quantity
}

// Items returns the checkout lines ordered by product id.
func (c *Cart) Items() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.itemsLocked()
}

// Total is the sum of price times quantity over all entries.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.itemsLocked())
}

// Summary returns items and total from one snapshot.
func (c *Cart) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.itemsLocked()
	return Summary{Items: items, Total: totalOf(items)}
}

// Len returns the number of selected products.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes every entry.
func (c *Cart) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.publishLocked()
}

// Retain drops entries whose product id fails keep and returns how many were
// dropped.
func (c *Cart) Retain(keep func(id int64) bool) int {
	c.mu.Lock()
	n := len(c.entries)
	for id := range c.entries {
		if !keep(id) {
			delete(c.entries, id)
		}
	}
	dropped := n - len(c.entries)
	if dropped == 0 {
		c.mu.Unlock()
		return 0
	}
	c.publishLocked()
	return dropped
}

// Subscribe receives the checkout view after every change.
func (c *Cart) Subscribe(fn func(Summary)) *broadcast.Subscription {
	return c.changes.Subscribe(fn)
}

// publishLocked queues the new summary, releases c.mu and then notifies
// subscribers. Summaries reach subscribers in mutation order.
func (c *Cart) publishLocked() {
	items := c.itemsLocked()
	c.changes.Queue(Summary{Items: items, Total: totalOf(items)})
	c.mu.Unlock()
	c.changes.Flush()
}

func (c *Cart) itemsLocked() []Entry {
	items := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		items = append(items, e)
	}
	slices.SortFunc(items, func(a, b Entry) int { return cmp.Compare(a.Product.ID, b.Product.ID) })
	return items
}

func totalOf(items []Entry) float64 {
	var total float64
	for _, e := range items {
		total += e.Subtotal()
	}
	return total
}

// Close detaches subscribers.
func (c *Cart) Close() {
	c.changes.Close()
}
