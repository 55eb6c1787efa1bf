package storefront

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Chrissankov/gymshark-ecommerce/core/catalog"
	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/core/response"
)

type toggleView struct {
	Selected bool     `json:"selected"`
	Cart     cartView `json:"cart"`
}

type reconcileView struct {
	Removed int      `json:"removed"`
	Cart    cartView `json:"cart"`
}

func (a *App) getCart(w http.ResponseWriter, r *http.Request) {
	_ = response.JSON(w, http.StatusOK, a.cartView())
}

// cartProduct resolves the {id} route parameter against the catalog, falling
// back to the cart's own copy for products deleted since they were selected.
func (a *App) cartProduct(r *http.Request) (catalog.Product, error) {
	id, err := productID(r)
	if err != nil {
		return catalog.Product{}, err
	}
	p, err := a.catalog.Get(r.Context(), id)
	if !errors.Is(err, catalog.ErrNotFound) {
		return p, err
	}
	for _, e := range a.cart.Items() {
		if e.Product.ID == id {
			return e.Product, nil
		}
	}
	return catalog.Product{}, err
}

func (a *App) toggleCart(w http.ResponseWriter, r *http.Request) {
	p, err := a.cartProduct(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	selected := a.cart.Toggle(p)
	_ = response.JSON(w, http.StatusOK, toggleView{Selected: selected, Cart: a.cartView()})
}

func (a *App) increaseCart(w http.ResponseWriter, r *http.Request) {
	a.adjustCart(w, r, a.cart.Increase)
}

func (a *App) decreaseCart(w http.ResponseWriter, r *http.Request) {
	a.adjustCart(w, r, a.cart.Decrease)
}

// adjustCart applies a quantity change. Products that are not selected are
// left untouched.
func (a *App) adjustCart(w http.ResponseWriter, r *http.Request, fn func(catalog.Product)) {
	p, err := a.cartProduct(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	fn(p)
	_ = response.JSON(w, http.StatusOK, a.cartView())
}

// checkout returns the final summary and empties the selection.
func (a *App) checkout(w http.ResponseWriter, r *http.Request) {
	view := a.cartView()
	a.cart.Clear()

	a.logger.InfoContext(r.Context(), "checkout",
		logger.Component("storefront"),
		logger.Count("items", view.Count),
		slog.Float64("total", view.Total))

	_ = response.JSON(w, http.StatusOK, view)
}

// reconcileCart drops entries whose product no longer exists.
func (a *App) reconcileCart(w http.ResponseWriter, r *http.Request) {
	products, err := a.catalog.Load(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	known := make(map[int64]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}

	removed := a.cart.Retain(func(id int64) bool {
		_, ok := known[id]
		return ok
	})
	_ = response.JSON(w, http.StatusOK, reconcileView{Removed: removed, Cart: a.cartView()})
}
